package routing

import (
	"errors"

	"github.com/lintang-b-s/arterial/pkg/util"
)

var ErrSearchBudgetExceeded = errors.New("route search budget exceeded")

func budgetExceeded(q Query, budget int) error {
	return util.WrapErrorf(ErrSearchBudgetExceeded, util.ErrUnprocessable,
		"route from %q to %q needs more than %d expansions", q.Start, q.End, budget)
}
