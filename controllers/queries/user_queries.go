package queries

type UserQueries struct {
	Query string `query:"q"`
}

type RegisterQueries struct {
	Invite string `query:"invite"`
}
