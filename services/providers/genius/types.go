package genius

// searchResponse is the payload of the /search endpoint.
type searchResponse struct {
	Meta struct {
		Status int `json:"status"`
	} `json:"meta"`
	Response struct {
		Hits []hit `json:"hits"`
	} `json:"response"`
}

type hit struct {
	Type   string `json:"type"`
	Result struct {
		ID        int64  `json:"id"`
		FullTitle string `json:"full_title"`
		URL       string `json:"url"`
	} `json:"result"`
}
