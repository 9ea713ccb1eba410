package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const ContextProfileKey = "performanceProfile"

func NewPerformanceProfile() *PerformanceProfile {
	return &PerformanceProfile{
		StartTime: time.Now(),
	}
}

type PerformanceProfileEvent struct {
	Name      string    `json:"name"`
	ElapsedMs int64     `json:"elapsedMs"`
	Time      time.Time `json:"time"`
}

type PerformanceProfile struct {
	StartTime time.Time                 `json:"-"`
	Events    []PerformanceProfileEvent `json:"events"`
	TotalMs   int64                     `json:"totalMs"`
}

func GetPerformanceProfile(ctx context.Context) *PerformanceProfile {
	profile, ok := ctx.Value(ContextProfileKey).(*PerformanceProfile)
	if !ok {
		return NewPerformanceProfile()
	}
	return profile
}

func (p *PerformanceProfile) End() {
	p.TotalMs = time.Since(p.StartTime).Milliseconds()
}

func (p *PerformanceProfile) Add(name string) {
	last := p.StartTime
	if len(p.Events) > 0 {
		last = p.Events[len(p.Events)-1].Time
	}
	now := time.Now()
	p.Events = append(p.Events, PerformanceProfileEvent{
		Name:      name,
		ElapsedMs: now.Sub(last).Milliseconds(),
		Time:      now,
	})
}

func (p PerformanceProfile) ToJsonBytes() ([]byte, error) {
	bytes, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal performance profile: %w", err)
	}
	return bytes, nil
}
