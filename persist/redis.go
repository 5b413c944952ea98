package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/orbitalstate/hfsm"
	backend "github.com/redis/go-redis/v9"
)

// RedisSaverLoader persists to Redis, grounded on the Redis adapter
// pattern used elsewhere in the pack for save/load-shaped state stores:
// one string key for the current state, one for the history map, both
// JSON-encoded and sharing a prefix.
type RedisSaverLoader struct {
	client *backend.Client
	prefix string
	ctx    context.Context
}

// NewRedisSaverLoader creates a RedisSaverLoader keyed under prefix
// (e.g. "hfsm:order-machine:"). ctx bounds every Redis call this
// SaverLoader makes; pass context.Background() if none applies.
func NewRedisSaverLoader(client *backend.Client, prefix string, ctx context.Context) *RedisSaverLoader {
	return &RedisSaverLoader{client: client, prefix: prefix, ctx: ctx}
}

func (r *RedisSaverLoader) currentKey() string { return r.prefix + "current" }
func (r *RedisSaverLoader) historyKey() string { return r.prefix + "history" }

type currentDocument struct {
	ID      hfsm.StateID `json:"id"`
	Present bool         `json:"present"`
}

func (r *RedisSaverLoader) SaveCurrentState(current hfsm.StateID, present bool) error {
	data, err := json.Marshal(currentDocument{ID: current, Present: present})
	if err != nil {
		return fmt.Errorf("persist: marshal current: %w", err)
	}
	if err := r.client.Set(r.ctx, r.currentKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("persist: redis set current: %w", err)
	}
	return nil
}

func (r *RedisSaverLoader) SaveHistoryStates(history map[hfsm.StateID]hfsm.StateID) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("persist: marshal history: %w", err)
	}
	if err := r.client.Set(r.ctx, r.historyKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("persist: redis set history: %w", err)
	}
	return nil
}

func (r *RedisSaverLoader) LoadCurrentState() (hfsm.StateID, bool, error) {
	val, err := r.client.Get(r.ctx, r.currentKey()).Result()
	if err != nil {
		if err == backend.Nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("persist: redis get current: %w", err)
	}
	var doc currentDocument
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		return "", false, fmt.Errorf("persist: unmarshal current: %w", err)
	}
	return doc.ID, doc.Present, nil
}

func (r *RedisSaverLoader) LoadHistoryStates() (map[hfsm.StateID]hfsm.StateID, error) {
	val, err := r.client.Get(r.ctx, r.historyKey()).Result()
	if err != nil {
		if err == backend.Nil {
			return map[hfsm.StateID]hfsm.StateID{}, nil
		}
		return nil, fmt.Errorf("persist: redis get history: %w", err)
	}
	history := map[hfsm.StateID]hfsm.StateID{}
	if err := json.Unmarshal([]byte(val), &history); err != nil {
		return nil, fmt.Errorf("persist: unmarshal history: %w", err)
	}
	return history, nil
}
