package errors

import "errors"

var ErrSalesPlanNotFound = errors.New("no sales plan for seller and period")
