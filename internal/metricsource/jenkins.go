// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package metricsource

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

const jenkinsJobsTree = "jobs[name,url,color,buildable,lastBuild[timestamp],lastStableBuild[timestamp]]"

type jenkinsBuild struct {
	Timestamp int64 `json:"timestamp"` // milliseconds since the epoch
}

func (b *jenkinsBuild) time() time.Time { return time.UnixMilli(b.Timestamp) }

type jenkinsJob struct {
	Name            string        `json:"name"`
	URL             string        `json:"url"`
	Color           string        `json:"color"`
	Buildable       bool          `json:"buildable"`
	LastBuild       *jenkinsBuild `json:"lastBuild"`
	LastStableBuild *jenkinsBuild `json:"lastStableBuild"`
}

// Jenkins reports on the jobs of a Jenkins build server. The job list is
// fetched once per instance.
type Jenkins struct {
	baseURL string
	client  *Client
	now     func() time.Time

	mu   sync.Mutex
	jobs []jenkinsJob
}

// NewJenkins returns a Jenkins adapter for the server at baseURL.
func NewJenkins(baseURL string, client *Client) *Jenkins {
	return &Jenkins{baseURL: strings.TrimRight(baseURL, "/"), client: client, now: time.Now}
}

// URL returns the server base url.
func (j *Jenkins) URL() string { return j.baseURL }

func (j *Jenkins) fetchJobs(ctx context.Context) ([]jenkinsJob, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.jobs != nil {
		return j.jobs, nil
	}
	var body struct {
		Jobs *[]jenkinsJob `json:"jobs"`
	}
	params := url.Values{}
	params.Set("tree", jenkinsJobsTree)
	if err := j.client.GetJSON(ctx, j.baseURL+"/api/json?"+params.Encode(), &body); err != nil {
		return nil, err
	}
	if body.Jobs == nil {
		return nil, fmt.Errorf("%w: key %q not found", ErrMalformed, "jobs")
	}
	j.jobs = *body.Jobs
	return j.jobs, nil
}

// NumberOfJobs returns the number of buildable jobs.
func (j *Jenkins) NumberOfJobs(ctx context.Context) int {
	jobs, err := j.fetchJobs(ctx)
	if err != nil {
		warn("Couldn't read Jenkins jobs", err, "url", j.baseURL)
		return Unknown
	}
	n := 0
	for _, job := range jobs {
		if job.Buildable {
			n++
		}
	}
	return n
}

// FailingJobs returns the number of buildable jobs whose last build failed
// and that have had no stable build in the last days days.
func (j *Jenkins) FailingJobs(ctx context.Context, days int) int {
	urls, err := j.failing(ctx, days)
	if err != nil {
		warn("Couldn't read Jenkins jobs", err, "url", j.baseURL)
		return Unknown
	}
	return len(urls)
}

// FailingJobsURL maps "name (N dagen)" to the job url for every failing
// job, where N is the number of days since the last stable build.
func (j *Jenkins) FailingJobsURL(ctx context.Context, days int) map[string]string {
	urls, err := j.failing(ctx, days)
	if err != nil {
		warn("Couldn't read Jenkins jobs", err, "url", j.baseURL)
		return nil
	}
	return urls
}

// UnusedJobs returns the number of buildable jobs without any build in the
// last days days.
func (j *Jenkins) UnusedJobs(ctx context.Context, days int) int {
	urls, err := j.unused(ctx, days)
	if err != nil {
		warn("Couldn't read Jenkins jobs", err, "url", j.baseURL)
		return Unknown
	}
	return len(urls)
}

// UnusedJobsURL maps "name (N dagen)" to the job url for every unused job,
// where N is the number of days since the last build.
func (j *Jenkins) UnusedJobsURL(ctx context.Context, days int) map[string]string {
	urls, err := j.unused(ctx, days)
	if err != nil {
		warn("Couldn't read Jenkins jobs", err, "url", j.baseURL)
		return nil
	}
	return urls
}

func (j *Jenkins) failing(ctx context.Context, days int) (map[string]string, error) {
	jobs, err := j.fetchJobs(ctx)
	if err != nil {
		return nil, err
	}
	now := j.now()
	out := map[string]string{}
	for _, job := range jobs {
		if !job.Buildable || !isFailedColor(job.Color) {
			continue
		}
		if job.LastStableBuild != nil && now.Sub(job.LastStableBuild.time()) <= daysDuration(days) {
			continue
		}
		out[jobLabel(job.Name, job.LastStableBuild, now)] = job.URL
	}
	return out, nil
}

func (j *Jenkins) unused(ctx context.Context, days int) (map[string]string, error) {
	jobs, err := j.fetchJobs(ctx)
	if err != nil {
		return nil, err
	}
	now := j.now()
	out := map[string]string{}
	for _, job := range jobs {
		if !job.Buildable {
			continue
		}
		if job.LastBuild != nil && now.Sub(job.LastBuild.time()) <= daysDuration(days) {
			continue
		}
		out[jobLabel(job.Name, job.LastBuild, now)] = job.URL
	}
	return out, nil
}

// isFailedColor reports whether a Jenkins ball color means the last build
// did not succeed. "_anime" suffixes mark a running build.
func isFailedColor(color string) bool {
	switch strings.TrimSuffix(color, "_anime") {
	case "red", "yellow", "aborted":
		return true
	}
	return false
}

func daysDuration(days int) time.Duration { return time.Duration(days) * 24 * time.Hour }

func jobLabel(name string, build *jenkinsBuild, now time.Time) string {
	if build == nil {
		return name + " (? dagen)"
	}
	age := int(now.Sub(build.time()).Hours() / 24)
	return fmt.Sprintf("%s (%d dagen)", name, age)
}
