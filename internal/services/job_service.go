package services

import (
	"github.com/sjperalta/fintera-homes/internal/jobs"
)

type JobService struct {
	worker *jobs.Worker
}

func NewJobService(worker *jobs.Worker) *JobService {
	return &JobService{
		worker: worker,
	}
}

// GetStatus reports worker load and the last run of each scheduled job
func (s *JobService) GetStatus() jobs.WorkerStats {
	return s.worker.GetStats()
}
