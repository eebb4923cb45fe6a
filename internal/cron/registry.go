package cron

import "context"

// Job is one warehouse automation the worker runs every cycle, such as
// expiring stale reservations or cleaning up failed orders.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds the automations in the order the worker executes them.
type Registry struct {
	jobs []Job
}

// NewRegistry builds a registry preloaded with the provided automations.
func NewRegistry(jobs ...Job) *Registry {
	registry := &Registry{}
	for _, job := range jobs {
		registry.Register(job)
	}
	return registry
}

// Register appends an automation; nil entries are dropped.
func (r *Registry) Register(job Job) {
	if job == nil {
		return
	}
	r.jobs = append(r.jobs, job)
}

// Jobs returns a copy of the registered automations in execution order.
func (r *Registry) Jobs() []Job {
	jobs := make([]Job, len(r.jobs))
	copy(jobs, r.jobs)
	return jobs
}
