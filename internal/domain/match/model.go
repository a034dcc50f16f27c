package match

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
)

var (
	ErrSameTeam       = errors.New("a team cannot play itself")
	ErrInvalidTeamID  = errors.New("invalid team id")
	ErrPartialScore   = errors.New("both scores must be set or both empty")
	ErrNegativeScore  = errors.New("score cannot be negative")
	ErrInvalidWinner  = errors.New("winner must be one of the two teams")
	ErrWinnerMismatch = errors.New("winner does not match the scores")
	ErrInvalidPairKey = errors.New("invalid pair key")
)

// PairKey identifies an unordered team pair, smaller id first.
type PairKey struct {
	Low  int
	High int
}

func NewPairKey(teamA, teamB int) (PairKey, error) {
	if teamA <= 0 || teamB <= 0 {
		return PairKey{}, fmt.Errorf("%w: %d vs %d", ErrInvalidTeamID, teamA, teamB)
	}
	if teamA == teamB {
		return PairKey{}, fmt.Errorf("%w: team=%d", ErrSameTeam, teamA)
	}
	if teamA > teamB {
		teamA, teamB = teamB, teamA
	}

	return PairKey{Low: teamA, High: teamB}, nil
}

// ParsePairKey reads the "low-high" form produced by String.
func ParsePairKey(raw string) (PairKey, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(raw), "-")
	if !ok {
		return PairKey{}, fmt.Errorf("%w: %q", ErrInvalidPairKey, raw)
	}
	a, err := strconv.Atoi(left)
	if err != nil {
		return PairKey{}, fmt.Errorf("%w: %q", ErrInvalidPairKey, raw)
	}
	b, err := strconv.Atoi(right)
	if err != nil {
		return PairKey{}, fmt.Errorf("%w: %q", ErrInvalidPairKey, raw)
	}

	return NewPairKey(a, b)
}

func (k PairKey) String() string {
	return strconv.Itoa(k.Low) + "-" + strconv.Itoa(k.High)
}

// Result is the outcome of the match between TeamA and TeamB. Nil scores
// mean the match has not been played; a nil winner with scores is a draw.
type Result struct {
	TeamA  int
	TeamB  int
	ScoreA *int
	ScoreB *int
	Winner *int
}

// NewResult validates a result read from storage or built by hand.
func NewResult(teamA, teamB int, scoreA, scoreB, winner *int) (Result, error) {
	if _, err := NewPairKey(teamA, teamB); err != nil {
		return Result{}, err
	}
	if (scoreA == nil) != (scoreB == nil) {
		return Result{}, fmt.Errorf("%w: %d vs %d", ErrPartialScore, teamA, teamB)
	}
	if winner != nil && *winner != teamA && *winner != teamB {
		return Result{}, fmt.Errorf("%w: winner=%d match=%d-%d", ErrInvalidWinner, *winner, teamA, teamB)
	}

	out := Result{
		TeamA:  teamA,
		TeamB:  teamB,
		ScoreA: copyInt(scoreA),
		ScoreB: copyInt(scoreB),
		Winner: copyInt(winner),
	}
	if scoreA == nil {
		if winner != nil {
			return Result{}, fmt.Errorf("%w: unplayed match %d-%d has a winner", ErrWinnerMismatch, teamA, teamB)
		}
		return out, nil
	}

	if *scoreA < 0 || *scoreB < 0 {
		return Result{}, fmt.Errorf("%w: %d-%d", ErrNegativeScore, *scoreA, *scoreB)
	}
	expected := decide(teamA, teamB, *scoreA, *scoreB)
	if !equalIntPtr(expected, winner) {
		return Result{}, fmt.Errorf("%w: %d-%d scored %d-%d", ErrWinnerMismatch, teamA, teamB, *scoreA, *scoreB)
	}

	return out, nil
}

// Pending returns the unplayed result for a pair.
func Pending(teamA, teamB int) (Result, error) {
	res, err := NewResult(teamA, teamB, nil, nil, nil)
	if err != nil {
		return Result{}, err
	}
	return res.Canonical(), nil
}

// Record builds a played result from raw submitted scores: scores are clamped
// to the match point and the winner is derived, a tie being a draw.
func Record(teamA, teamB, scoreA, scoreB int, rules settings.Settings) (Result, error) {
	if err := rules.Validate(); err != nil {
		return Result{}, err
	}
	if _, err := NewPairKey(teamA, teamB); err != nil {
		return Result{}, err
	}

	a := rules.Clamp(scoreA)
	b := rules.Clamp(scoreB)

	return Result{
		TeamA:  teamA,
		TeamB:  teamB,
		ScoreA: &a,
		ScoreB: &b,
		Winner: decide(teamA, teamB, a, b),
	}.Canonical(), nil
}

func (r Result) Key() PairKey {
	if r.TeamA > r.TeamB {
		return PairKey{Low: r.TeamB, High: r.TeamA}
	}
	return PairKey{Low: r.TeamA, High: r.TeamB}
}

// Played reports whether both scores are recorded.
func (r Result) Played() bool {
	return r.ScoreA != nil && r.ScoreB != nil
}

func (r Result) IsDraw() bool {
	return r.Played() && r.Winner == nil
}

func (r Result) Involves(teamID int) bool {
	return r.TeamA == teamID || r.TeamB == teamID
}

// Between reports whether the result is the match of exactly these two teams.
func (r Result) Between(teamA, teamB int) bool {
	return (r.TeamA == teamA && r.TeamB == teamB) || (r.TeamA == teamB && r.TeamB == teamA)
}

// ScoreOf returns the points scored by and against teamID.
func (r Result) ScoreOf(teamID int) (scored, conceded int, ok bool) {
	if !r.Played() {
		return 0, 0, false
	}
	switch teamID {
	case r.TeamA:
		return *r.ScoreA, *r.ScoreB, true
	case r.TeamB:
		return *r.ScoreB, *r.ScoreA, true
	default:
		return 0, 0, false
	}
}

// Canonical orients the result so TeamA is the smaller id.
func (r Result) Canonical() Result {
	out := Result{
		TeamA:  r.TeamA,
		TeamB:  r.TeamB,
		ScoreA: copyInt(r.ScoreA),
		ScoreB: copyInt(r.ScoreB),
		Winner: copyInt(r.Winner),
	}
	if out.TeamA > out.TeamB {
		out.TeamA, out.TeamB = out.TeamB, out.TeamA
		out.ScoreA, out.ScoreB = out.ScoreB, out.ScoreA
	}
	return out
}

// Results maps each pair to its single stored result.
type Results map[PairKey]Result

func (rs Results) Clone() Results {
	out := make(Results, len(rs))
	for k, v := range rs {
		out[k] = v.Canonical()
	}
	return out
}

// Sorted lists results ordered by pair key.
func (rs Results) Sorted() []Result {
	keys := make([]PairKey, 0, len(rs))
	for k := range rs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Low != keys[j].Low {
			return keys[i].Low < keys[j].Low
		}
		return keys[i].High < keys[j].High
	})

	out := make([]Result, 0, len(keys))
	for _, k := range keys {
		out = append(out, rs[k])
	}
	return out
}

func decide(teamA, teamB, scoreA, scoreB int) *int {
	switch {
	case scoreA > scoreB:
		return &teamA
	case scoreB > scoreA:
		return &teamB
	default:
		return nil
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func IntPtr(v int) *int {
	return &v
}
