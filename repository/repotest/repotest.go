// Package repotest opens throwaway sqlite repositories for tests.
package repotest

import (
	"catalog-service/constant"
	"catalog-service/entities"
	"catalog-service/repository"
	"context"
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"path/filepath"
	"testing"
)

// Open creates a migrated repository backed by a temp-dir database file.
func Open(t testing.TB) repository.Repository {
	t.Helper()

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	repo := repository.NewRepo(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func User(t testing.TB, repo repository.Repository, email string, role constant.Role) *entities.User {
	t.Helper()
	user := &entities.User{
		FirstName: "Test",
		Email:     email,
		Password:  "x",
		Role:      role,
		PlanType:  constant.PlanNone,
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func Genre(t testing.TB, repo repository.Repository, name string) *entities.Genre {
	t.Helper()
	genre := &entities.Genre{Name: name}
	require.NoError(t, repo.CreateGenre(context.Background(), genre))
	return genre
}

func Content(t testing.TB, repo repository.Repository, genre *entities.Genre, title string, publish constant.PublishState) *entities.Content {
	t.Helper()
	content := &entities.Content{
		Title:       title,
		Description: title + " description",
		Publish:     publish,
		GenreID:     genre.ID,
	}
	require.NoError(t, repo.CreateContent(context.Background(), content))
	return content
}
