package automaton

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const concurrentRuns = 8

func TestConcurrentComputations_DFSM(t *testing.T) {
	m := newParity(t)
	inputs := rapid.SliceOfN(rapid.SliceOfN(rapid.SampledFrom([]string{"0", "1", "?"}), 1, 40), 1, 16)

	rapid.Check(t, func(t *rapid.T) {
		batch := inputs.Draw(t, "inputs")
		want := make([]Computation[string, string], len(batch))
		for i, input := range batch {
			c, err := m.Record(input)
			require.NoError(t, err)
			want[i] = c
		}

		var wg sync.WaitGroup
		got := make([]Computation[string, string], len(batch))
		errs := make([]error, len(batch))
		for i := range batch {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				for rep := 0; rep < concurrentRuns; rep++ {
					got[i], errs[i] = m.Record(batch[i])
					if errs[i] != nil {
						return
					}
				}
			}(i)
		}
		wg.Wait()

		for i := range batch {
			require.NoError(t, errs[i])
			assert.Equal(t, want[i], got[i], "input %d", i)
		}
	})
}

func TestConcurrentComputations_NFSM(t *testing.T) {
	m := newChain(t)
	inputs := rapid.SliceOfN(rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b"}), 0, 30), 1, 16)

	rapid.Check(t, func(t *rapid.T) {
		batch := inputs.Draw(t, "inputs")
		want := make([]string, len(batch))
		for i, input := range batch {
			want[i] = traceString(t, m, input)
		}

		var wg sync.WaitGroup
		got := make([]string, len(batch))
		for i := range batch {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				for rep := 0; rep < concurrentRuns; rep++ {
					got[i] = traceString(t, m, batch[i])
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, want, got)
	})
}

// traceString renders a branch computation; configurations print sorted
func traceString(t *rapid.T, m *NFSM[string, string, string], input []string) string {
	c, err := m.Record(append([]string{}, input...))
	if err != nil {
		t.Error(err)
		return ""
	}
	s := ""
	for _, step := range c.Steps {
		s += fmt.Sprintf("%v -%v-> %v;", step.From, step.Symbol, step.To)
	}
	return s
}
