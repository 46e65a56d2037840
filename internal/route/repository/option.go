package repository

// GetRouteOptions selects a single route record.
type GetRouteOptions struct {
	ID string
}

// PutRouteOptions holds the full record to insert or replace.
type PutRouteOptions struct {
	ID                 string
	RepositoryFullPath string
	ChannelID          string
}
