package feeding

import "context"

type Repository interface {
	CreateFeedType(ctx context.Context, f FeedType) error
	GetFeedType(ctx context.Context, id string) (FeedType, error)
	ListFeedTypes(ctx context.Context) ([]FeedType, error)

	CreateSchedule(ctx context.Context, s Schedule) error
	UpdateSchedule(ctx context.Context, s Schedule) error
	DeleteSchedule(ctx context.Context, id string) error
	GetSchedule(ctx context.Context, id string) (Schedule, error)
	// ListSchedules ordena por Time asc.
	ListSchedules(ctx context.Context) ([]Schedule, error)

	CreateRecord(ctx context.Context, r Record) error
	UpdateRecord(ctx context.Context, r Record) error
	DeleteRecord(ctx context.Context, id string) error
	GetRecord(ctx context.Context, id string) (Record, error)
	// ListRecords ordena por FeedingTime desc.
	ListRecords(ctx context.Context, filter RecordFilter) ([]Record, error)
}
