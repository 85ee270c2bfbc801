package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/entity"
	"gigwork-chat-app/enum"
)

type JobRepository struct {
	Repository[entity.Job]
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{Repository[entity.Job]{DB: db}}
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*entity.Job, error) {
	var job entity.Job
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("job %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) IncrementApplicants(ctx context.Context, jobID string) error {
	return r.DB.WithContext(ctx).
		Model(&entity.Job{}).
		Where("id = ?", jobID).
		Update("applicant_count", gorm.Expr("applicant_count + 1")).Error
}

// AssignSeeker commits an accepted offer onto the job: the seeker gets the
// assignment, the job moves to pending work, and acceptance is stamped.
func (r *JobRepository) AssignSeeker(ctx context.Context, jobID, jobSeekerID string, offer float64, acceptedAt time.Time) error {
	return r.DB.WithContext(ctx).
		Model(&entity.Job{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"job_seeker_id": jobSeekerID,
			"offer":         offer,
			"status":        enum.JobStatusPending,
			"accepted_at":   acceptedAt,
		}).Error
}
