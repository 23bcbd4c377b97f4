package types

type HumanizeRequest struct {
	Text string `json:"text"`
}

type HumanizeResponse struct {
	Output string `json:"output"`
}
