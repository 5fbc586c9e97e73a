// Package storage persists batch encode jobs in pebble, keyed by ksuid so
// that key order follows creation time.
package storage

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// ErrNotFound is returned for job ids that are not stored.
var ErrNotFound = errors.New("job not found")

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Point is one coordinate of a batch.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ItemResult holds the codes of the point at Index, or why there are none.
type ItemResult struct {
	Index int      `json:"index"`
	Codes []string `json:"codes,omitempty"`
	Error string   `json:"error,omitempty"`
}

// Job is a batch encode request together with its outcome.
type Job struct {
	ID        string       `json:"id"`
	Status    Status       `json:"status"`
	Territory string       `json:"territory,omitempty"`
	Precision int          `json:"precision,omitempty"`
	Shortest  bool         `json:"shortest,omitempty"`
	Points    []Point      `json:"points"`
	Results   []ItemResult `json:"results,omitempty"`
	Error     string       `json:"error,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

var (
	jobPrefix = []byte("job/")
	jobUpper  = []byte("job0")
)

func jobKey(id ksuid.KSUID) []byte {
	return append(append([]byte{}, jobPrefix...), id.Bytes()...)
}

// JobStore is a pebble-backed job table.
type JobStore struct {
	db *pebble.DB
}

// Open opens or creates the store in dir.
func Open(dir string) (*JobStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open job store %s", dir)
	}
	return &JobStore{db: db}, nil
}

// Create assigns a new id to job, marks it pending and stores it.
func (s *JobStore) Create(job *Job) (ksuid.KSUID, error) {
	now := time.Now().UTC()
	id, err := ksuid.NewRandomWithTime(now)
	if err != nil {
		return ksuid.Nil, errors.Wrap(err, "new job id")
	}
	job.ID = id.String()
	job.Status = StatusPending
	job.CreatedAt = now
	job.UpdatedAt = now
	if err := s.put(id, job); err != nil {
		return ksuid.Nil, err
	}
	return id, nil
}

// Read loads the job with the given id.
func (s *JobStore) Read(id ksuid.KSUID) (*Job, error) {
	data, closer, err := s.db.Get(jobKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "%s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read job %s", id)
	}
	defer closer.Close()

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, errors.Wrapf(err, "decode job %s", id)
	}
	return &job, nil
}

// Update replaces a stored job.
func (s *JobStore) Update(job *Job) error {
	id, err := ksuid.Parse(job.ID)
	if err != nil {
		return errors.Wrapf(ErrNotFound, "bad id %q", job.ID)
	}
	_, closer, err := s.db.Get(jobKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return errors.Wrapf(ErrNotFound, "%s", id)
	}
	if err != nil {
		return errors.Wrapf(err, "read job %s", id)
	}
	closer.Close()
	job.UpdatedAt = time.Now().UTC()
	return s.put(id, job)
}

// Delete removes a job. Deleting a missing job is not an error.
func (s *JobStore) Delete(id ksuid.KSUID) error {
	return errors.Wrapf(s.db.Delete(jobKey(id), pebble.Sync), "delete job %s", id)
}

// List returns up to limit jobs in descending id order, which is newest
// first to the second. A limit of zero or less returns all jobs.
func (s *JobStore) List(limit int) ([]*Job, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: jobPrefix, UpperBound: jobUpper})
	if err != nil {
		return nil, errors.Wrap(err, "list jobs")
	}
	defer iter.Close()

	var jobs []*Job
	for valid := iter.Last(); valid; valid = iter.Prev() {
		if limit > 0 && len(jobs) == limit {
			break
		}
		var job Job
		if err := json.Unmarshal(iter.Value(), &job); err != nil {
			return nil, errors.Wrapf(err, "decode job at %x", iter.Key())
		}
		jobs = append(jobs, &job)
	}
	return jobs, errors.Wrap(iter.Error(), "list jobs")
}

// Close closes the underlying database.
func (s *JobStore) Close() error {
	return s.db.Close()
}

func (s *JobStore) put(id ksuid.KSUID, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return errors.Wrapf(err, "encode job %s", id)
	}
	return errors.Wrapf(s.db.Set(jobKey(id), data, pebble.Sync), "write job %s", id)
}
