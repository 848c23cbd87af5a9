package visitor

type VisitorIDResponse struct {
	Data struct {
		VisitorID string `json:"visitor_id"`
	} `json:"data"`
}

type VisitorResponse struct {
	VisitorID string `json:"visitor_id"`
}
