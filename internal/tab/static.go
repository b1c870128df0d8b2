package tab

import "context"

// Static resolves to a tab given up front, e.g. on the command line.
type Static struct {
	Tab Info
}

func (s Static) Query(ctx context.Context, q Query) ([]Info, error) {
	if s.Tab.URL == "" {
		return nil, nil
	}
	return []Info{s.Tab}, nil
}
