package reminder

import "errors"

type OrderBy struct {
	v string
}

var (
	OrderByNotSet      OrderBy = OrderBy{}
	OrderByAtAsc       OrderBy = OrderBy{v: "at_asc"}
	OrderByAtDesc      OrderBy = OrderBy{v: "at_desc"}
	OrderByFiredAtDesc OrderBy = OrderBy{v: "fired_at_desc"}
)

var ErrParseOrderBy = errors.New("invalid order")

func ParseOrderBy(value string) (OrderBy, error) {
	switch value {
	case "at_asc":
		return OrderByAtAsc, nil
	case "at_desc":
		return OrderByAtDesc, nil
	case "fired_at_desc":
		return OrderByFiredAtDesc, nil
	default:
		return OrderByNotSet, ErrParseOrderBy
	}
}
