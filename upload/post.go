// Copyright © 2018 Geoff Holden <geoff@geoffholden.com>

package upload

import (
	"context"
	"net/http"
	"strings"
)

// Post sends the reading as an urlencoded form body.
type Post struct {
	target Target
	client *http.Client
}

func (p *Post) Name() string {
	return p.target.Name
}

func (p *Post) Upload(ctx context.Context, payload Payload) error {
	v := payload.Values(p.target.StationID, p.target.StationKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.target.URL, strings.NewReader(v.Encode()))
	if err != nil {
		return &UploadError{Target: p.target.Name, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	_, err = do(p.client, req, p.target.Name)
	return err
}

func (p *Post) Close() error {
	return nil
}
