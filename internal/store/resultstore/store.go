package resultstore

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kengiroy2-g/kenobase-sub007/internal/analysis"
	"github.com/kengiroy2-g/kenobase-sub007/internal/combo"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/constant"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/infra"
)

var ErrRunNotFound = errors.New("run not found")

// saveChunkSize bounds how many evaluations are encoded per write batch.
var saveChunkSize = 10_000

// RunRecord is the stored header of one run.
type RunRecord struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	StartedAt time.Time         `json:"started_at"`
	Elapsed   time.Duration     `json:"elapsed"`
	Cancelled bool              `json:"cancelled"`
	Counters  analysis.Counters `json:"counters"`
	Summary   analysis.Summary  `json:"summary"`
}

func runPrefix(runID string) string {
	return fmt.Sprintf("%s/%s/", constant.RunKeyPrefix, runID)
}

func summaryKey(runID string) string {
	return runPrefix(runID) + constant.SummaryKeySuffix
}

func evaluationKey(runID string, c combo.Combination) string {
	return fmt.Sprintf("%s%s/%s", runPrefix(runID), constant.EvaluationKeyPrefix, c.Key())
}

func unevaluatedKey(runID string, c combo.Combination) string {
	return fmt.Sprintf("%s%s/%s", runPrefix(runID), constant.UnevaluatedKeyPref, c.Key())
}

// RunID names a run after its analysis and start time.
func RunID(name string, startedAt time.Time) string {
	return fmt.Sprintf("%s-%d", name, startedAt.Unix())
}

type Store interface {
	// SaveReport writes a finished report in bounded write batches, the run
	// record last.
	SaveReport(runID string, rep *analysis.Report) error
	LoadSummary(runID string) (*RunRecord, error)
	ListEvaluations(runID string) ([]analysis.Evaluation, error)
	ListUnevaluated(runID string) ([]analysis.Evaluation, error)
	// ListRuns returns every stored run, newest first.
	ListRuns() ([]RunRecord, error)
	Close() error
}

type resultStore struct {
	store infra.KVStore
	codec infra.Codec
}

func New(store infra.KVStore) Store {
	return &resultStore{store: store, codec: infra.JSON}
}

func (rs *resultStore) SaveReport(runID string, rep *analysis.Report) error {
	if runID == "" {
		return errors.New("run id is required")
	}
	if rep == nil {
		return errors.New("report is required")
	}

	kvs := make(map[string]any, min(saveChunkSize, len(rep.Evaluations)+len(rep.Unevaluated)))
	put := func(key string, e analysis.Evaluation) error {
		kvs[key] = e
		if len(kvs) < saveChunkSize {
			return nil
		}
		return rs.flush(kvs)
	}
	for _, e := range rep.Evaluations {
		if err := put(evaluationKey(runID, e.Combination), e); err != nil {
			return err
		}
	}
	for _, e := range rep.Unevaluated {
		if err := put(unevaluatedKey(runID, e.Combination), e); err != nil {
			return err
		}
	}
	if err := rs.flush(kvs); err != nil {
		return err
	}

	// the record goes last so ListRuns only sees fully written runs
	return rs.store.SetAny(summaryKey(runID), RunRecord{
		ID:        runID,
		Name:      rep.Name,
		StartedAt: rep.StartedAt,
		Elapsed:   rep.Elapsed,
		Cancelled: rep.Cancelled,
		Counters:  rep.Counters,
		Summary:   rep.Summary,
	})
}

func (rs *resultStore) flush(kvs map[string]any) error {
	if len(kvs) == 0 {
		return nil
	}
	if err := rs.store.SetManyAny(kvs); err != nil {
		return fmt.Errorf("save evaluations: %w", err)
	}
	clear(kvs)
	return nil
}

func (rs *resultStore) LoadSummary(runID string) (*RunRecord, error) {
	var rec RunRecord
	found, err := rs.store.GetAny(summaryKey(runID), &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return &rec, nil
}

func (rs *resultStore) ListEvaluations(runID string) ([]analysis.Evaluation, error) {
	return rs.listEvaluations(runPrefix(runID) + constant.EvaluationKeyPrefix + "/")
}

func (rs *resultStore) ListUnevaluated(runID string) ([]analysis.Evaluation, error) {
	return rs.listEvaluations(runPrefix(runID) + constant.UnevaluatedKeyPref + "/")
}

func (rs *resultStore) listEvaluations(prefix string) ([]analysis.Evaluation, error) {
	pairs, err := rs.store.List(prefix)
	if err != nil {
		return nil, err
	}
	out := make([]analysis.Evaluation, 0, len(pairs))
	for _, p := range pairs {
		var e analysis.Evaluation
		if err := rs.codec.Unmarshal(p.Value, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", p.Key, err)
		}
		out = append(out, e)
	}
	// keys sort as strings, combinations sort numerically
	sort.Slice(out, func(i, j int) bool {
		return combo.Compare(out[i].Combination, out[j].Combination) < 0
	})
	return out, nil
}

func (rs *resultStore) ListRuns() ([]RunRecord, error) {
	pairs, err := rs.store.List(constant.RunKeyPrefix + "/")
	if err != nil {
		return nil, err
	}
	var runs []RunRecord
	for _, p := range pairs {
		if !strings.HasSuffix(p.Key, "/"+constant.SummaryKeySuffix) {
			continue
		}
		var rec RunRecord
		if err := rs.codec.Unmarshal(p.Value, &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", p.Key, err)
		}
		runs = append(runs, rec)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.After(runs[j].StartedAt)
		}
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

func (rs *resultStore) Close() error {
	return rs.store.Close()
}
