package secrets

import "context"

type staticStore struct {
	bundle Bundle
}

// NewStatic returns a Store that always yields b. Used for local runs and tests.
func NewStatic(b Bundle) Store {
	return &staticStore{bundle: b}
}

func (s *staticStore) Load(ctx context.Context) (Bundle, error) {
	if err := ctx.Err(); err != nil {
		return Bundle{}, err
	}
	return s.bundle, nil
}
