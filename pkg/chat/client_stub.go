package chat

import "context"

// ClientStub is an in-memory Client for tests.
type ClientStub struct {
	Response string
	Err      error

	Prompts []string
}

func (c *ClientStub) Complete(ctx context.Context, prompt string) (string, error) {
	c.Prompts = append(c.Prompts, prompt)
	if c.Err != nil {
		return "", c.Err
	}
	return c.Response, nil
}
