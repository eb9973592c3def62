package v1

type passagesRetrieved struct {
	Items        string `logevent:"items"`
	PassageCount int64  `logevent:"passage_count"`
	Message      string `logevent:"message,default=passages-retrieved"`
}

type upstreamRejected struct {
	StatusCode int    `logevent:"status_code"`
	StatusText string `logevent:"status_text"`
	Message    string `logevent:"message,default=upstream-rejected"`
}

type upstreamUnavailable struct {
	Reason  string `logevent:"reason"`
	Message string `logevent:"message,default=upstream-unavailable"`
}

type retrievalFailed struct {
	Reason  string `logevent:"reason"`
	Message string `logevent:"message,default=retrieval-failed"`
}
