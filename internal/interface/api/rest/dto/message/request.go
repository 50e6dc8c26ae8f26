package message

type Request struct {
	Content string `json:"content"`
}
