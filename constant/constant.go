package constant

type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusFailed     JobStatus = "FAILED"
	JobStatusCompleted  JobStatus = "COMPLETED"
)

type JobType string

const (
	JobTypeTranscoder JobType = "transcoder"
)

const JobEntityContent = "content"

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}

// ProgressStatus is the playback state a client reports with each tick.
type ProgressStatus string

const (
	ProgressCompleted    ProgressStatus = "completed"
	ProgressNotCompleted ProgressStatus = "not completed"
)

func (s ProgressStatus) Valid() bool {
	return s == ProgressCompleted || s == ProgressNotCompleted
}

type PublishState string

const (
	PublishPublic   PublishState = "public"
	PublishPrivate  PublishState = "private"
	PublishSchedule PublishState = "schedule"
)

type PlanType string

const (
	PlanWithAds    PlanType = "withads"
	PlanWithoutAds PlanType = "withoutads"
	PlanNone       PlanType = "none"
)
