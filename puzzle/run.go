package puzzle

import (
	"crypto/sha256"
	"fmt"
)

// Runner executes a puzzle reveal against a solution, returning the
// emitted conditions and the execution cost. It is the oracle boundary:
// the engine never interprets spending logic anywhere else. maxCost of
// zero means unlimited.
type Runner interface {
	Run(reveal, solution []byte, maxCost uint64) ([]Condition, uint64, error)
}

// StandardRunner executes the library's standard pay-to-synthetic-key
// puzzle. It understands exactly the Solution wire format and emits, in
// order: CREATE_COIN per payment, RESERVE_FEE when a fee is set,
// CREATE_COIN_ANNOUNCEMENT per announcement, ASSERT_COIN_ANNOUNCEMENT per
// assertion, and a single AGG_SIG_ME binding the synthetic key to the
// solution digest.
type StandardRunner struct{}

var _ Runner = StandardRunner{}

// Run implements Runner.
func (StandardRunner) Run(reveal, solution []byte, maxCost uint64) ([]Condition, uint64, error) {
	puz, err := FromReveal(reveal)
	if err != nil {
		return nil, 0, err
	}

	sol, err := DecodeSolution(solution)
	if err != nil {
		return nil, 0, err
	}

	conditions := make([]Condition, 0, len(sol.Payments)+len(sol.Announcements)+len(sol.AssertAnnouncements)+2)
	for _, p := range sol.Payments {
		conditions = append(conditions, CreateCoin(p.PuzzleHash, p.Amount))
	}
	if sol.Fee > 0 {
		conditions = append(conditions, ReserveFee(sol.Fee))
	}
	for _, msg := range sol.Announcements {
		conditions = append(conditions, CreateCoinAnnouncement(msg))
	}
	for _, id := range sol.AssertAnnouncements {
		conditions = append(conditions, AssertCoinAnnouncement(id))
	}

	digest := sha256.Sum256(solution)
	conditions = append(conditions, AggSigMe(puz.SyntheticKey().Serialize(), digest[:]))

	var cost uint64
	for _, c := range conditions {
		cost += c.Cost()
	}
	if maxCost > 0 && cost > maxCost {
		return nil, 0, fmt.Errorf("%w: %d > %d", ErrCostBudget, cost, maxCost)
	}

	return conditions, cost, nil
}
