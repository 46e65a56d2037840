package route

// Route maps an opaque route id to a repository and the channel its
// notifications are posted to.
type Route struct {
	ID                 string
	RepositoryFullPath string
	ChannelID          string
}

// --- UseCase Inputs ---

type RegisterInput struct {
	RouteID            string
	RepositoryFullPath string
	ChannelID          string
}
