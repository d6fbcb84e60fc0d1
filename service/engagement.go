package service

import (
	"catalog-service/dto"
	"catalog-service/entities"
	"catalog-service/repository"
	"context"
	"errors"
	"github.com/rs/zerolog"
)

type EngagementService interface {
	ToggleLike(ctx context.Context, identity Identity, contentId uint) (dto.LikeResult, error)
	History(ctx context.Context, identity Identity, page repository.Page) (dto.Paginated[dto.ContentView], error)

	Wishlist(ctx context.Context, identity Identity) ([]dto.ContentView, error)
	AddToWishlist(ctx context.Context, identity Identity, contentId uint) (*entities.Wishlist, error)
	GetWishlist(ctx context.Context, identity Identity, id uint) (*entities.Wishlist, error)
	SetWished(ctx context.Context, identity Identity, contentId uint, wished bool) (*entities.Wishlist, error)
	RemoveFromWishlist(ctx context.Context, identity Identity, contentId uint) error
}

type engagementService struct {
	repo repository.Repository
}

func NewEngagementService(repo repository.Repository) EngagementService {
	return &engagementService{repo: repo}
}

// ToggleLike flips the caller's like on a content and returns the new state
// together with the content's like total.
func (s *engagementService) ToggleLike(ctx context.Context, identity Identity, contentId uint) (dto.LikeResult, error) {
	if err := s.ensureContent(ctx, contentId); err != nil {
		return dto.LikeResult{}, err
	}

	var result dto.LikeResult
	err := s.repo.Transaction(ctx, func(ctx context.Context) error {
		like, err := s.repo.FindLike(ctx, identity.UserID, contentId)
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			if err := s.repo.CreateLike(ctx, &entities.Like{UserID: identity.UserID, ContentID: contentId, IsLiked: true}); err != nil {
				return err
			}
			result.IsLiked = true
		case err != nil:
			return err
		default:
			if err := s.repo.DeleteLike(ctx, like.ID); err != nil {
				return err
			}
		}

		result.TotalLikes, err = s.repo.CountLikes(ctx, contentId)
		return err
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("content_id", contentId).Msg("failed to toggle like")
		return dto.LikeResult{}, persistence(err)
	}
	return result, nil
}

func (s *engagementService) History(ctx context.Context, identity Identity, page repository.Page) (dto.Paginated[dto.ContentView], error) {
	contents, total, err := s.repo.ListHistory(ctx, identity.UserID, page)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", identity.UserID).Msg("failed to list history")
		return dto.Paginated[dto.ContentView]{}, persistence(err)
	}
	views, err := contentViews(ctx, s.repo, contents, &identity)
	if err != nil {
		return dto.Paginated[dto.ContentView]{}, err
	}
	return dto.NewPaginated(views, max(page.Page, 1), page.Limit(), total), nil
}

// Wishlist returns the public contents the caller currently wishes for.
func (s *engagementService) Wishlist(ctx context.Context, identity Identity) ([]dto.ContentView, error) {
	contents, err := s.repo.ListWishlistContents(ctx, identity.UserID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", identity.UserID).Msg("failed to list wishlist")
		return nil, persistence(err)
	}
	if len(contents) == 0 {
		return nil, notFound("wishlist is empty")
	}
	return contentViews(ctx, s.repo, contents, &identity)
}

func (s *engagementService) AddToWishlist(ctx context.Context, identity Identity, contentId uint) (*entities.Wishlist, error) {
	if err := s.ensureContent(ctx, contentId); err != nil {
		return nil, err
	}

	wishlist, err := s.repo.FindWishlist(ctx, identity.UserID, contentId)
	switch {
	case errors.Is(err, repository.ErrRecordNotFound):
		wishlist = &entities.Wishlist{UserID: identity.UserID, ContentID: contentId, IsWished: true}
		if err := s.repo.CreateWishlist(ctx, wishlist); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Uint("content_id", contentId).Msg("failed to add to wishlist")
			return nil, persistence(err)
		}
		return wishlist, nil
	case err != nil:
		return nil, persistence(err)
	}

	if wishlist.IsWished {
		return nil, errors.Join(ErrConflict, errors.New("content is already in the wishlist"))
	}
	wishlist.IsWished = true
	if err := s.repo.SaveWishlist(ctx, wishlist); err != nil {
		return nil, persistence(err)
	}
	return wishlist, nil
}

func (s *engagementService) GetWishlist(ctx context.Context, identity Identity, id uint) (*entities.Wishlist, error) {
	wishlist, err := s.repo.FindWishlistById(ctx, identity.UserID, id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, notFound("wishlist %d", id)
	}
	if err != nil {
		return nil, persistence(err)
	}
	return wishlist, nil
}

func (s *engagementService) SetWished(ctx context.Context, identity Identity, contentId uint, wished bool) (*entities.Wishlist, error) {
	wishlist, err := s.findWishlist(ctx, identity.UserID, contentId)
	if err != nil {
		return nil, err
	}
	wishlist.IsWished = wished
	if err := s.repo.SaveWishlist(ctx, wishlist); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("content_id", contentId).Msg("failed to update wishlist")
		return nil, persistence(err)
	}
	return wishlist, nil
}

func (s *engagementService) RemoveFromWishlist(ctx context.Context, identity Identity, contentId uint) error {
	wishlist, err := s.findWishlist(ctx, identity.UserID, contentId)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteWishlist(ctx, wishlist.ID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("content_id", contentId).Msg("failed to remove from wishlist")
		return persistence(err)
	}
	return nil
}

func (s *engagementService) findWishlist(ctx context.Context, userId, contentId uint) (*entities.Wishlist, error) {
	wishlist, err := s.repo.FindWishlist(ctx, userId, contentId)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, notFound("content %d is not in the wishlist", contentId)
	}
	if err != nil {
		return nil, persistence(err)
	}
	return wishlist, nil
}

func (s *engagementService) ensureContent(ctx context.Context, contentId uint) error {
	ok, err := s.repo.ContentExists(ctx, contentId)
	if err != nil {
		return persistence(err)
	}
	if !ok {
		return notFound("content %d", contentId)
	}
	return nil
}

// contentViews decorates contents with their like totals and, for a known
// viewer, whether the viewer liked each of them.
func contentViews(ctx context.Context, repo repository.Repository, contents []*entities.Content, viewer *Identity) ([]dto.ContentView, error) {
	ids := make([]uint, 0, len(contents))
	for _, c := range contents {
		ids = append(ids, c.ID)
	}

	counts, err := repo.LikeCounts(ctx, ids)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to count likes")
		return nil, persistence(err)
	}
	var liked map[uint]bool
	if viewer != nil && viewer.UserID != 0 {
		liked, err = repo.LikedBy(ctx, viewer.UserID, ids)
		if err != nil {
			return nil, persistence(err)
		}
	}

	views := make([]dto.ContentView, 0, len(contents))
	for _, c := range contents {
		view := dto.ContentView{
			ID:          c.ID,
			Video1:      c.Video1,
			Title:       c.Title,
			Description: c.Description,
			Publish:     c.Publish,
			Schedule:    c.Schedule,
			GenreID:     c.GenreID,
			Image:       c.Image,
			TotalView:   c.ViewCount,
			TotalLikes:  counts[c.ID],
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		}
		if c.Genre != nil {
			name := c.Genre.Name
			view.GenreName = &name
		}
		if liked != nil {
			isLiked := liked[c.ID]
			view.IsLiked = &isLiked
		}
		views = append(views, view)
	}
	return views, nil
}
