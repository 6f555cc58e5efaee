package sysmetrics

import "errors"

// diskSpace holds the size of a volume and the bytes still available to
// unprivileged users.
type diskSpace struct {
	Total uint64
	Free  uint64
}

var errNoBlocks = errors.New("sysmetrics: filesystem reports zero blocks")

// usage returns (total-free)/total as a percentage.
func (d diskSpace) usage() (float64, error) {
	if d.Total == 0 {
		return 0, errNoBlocks
	}
	free := d.Free
	if free > d.Total {
		free = d.Total
	}
	return Ratio(float64(d.Total-free), float64(d.Total)), nil
}
