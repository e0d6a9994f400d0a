// Copyright © 2018 Geoff Holden <geoff@geoffholden.com>

package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	jww "github.com/spf13/jwalterweatherman"
)

// Wunderground sends the reading as a GET query string.
type Wunderground struct {
	target Target
	client *http.Client
}

func (w *Wunderground) Name() string {
	return w.target.Name
}

func (w *Wunderground) Upload(ctx context.Context, p Payload) error {
	v := p.Values(w.target.StationID, w.target.StationKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.target.URL+"?"+v.Encode(), nil)
	if err != nil {
		return &UploadError{Target: w.target.Name, Err: err}
	}
	body, err := do(w.client, req, w.target.Name)
	if err != nil {
		return err
	}
	if strings.TrimSpace(body) != "success" {
		jww.WARN.Println(w.target.Name, "unexpected response:", body)
	}
	return nil
}

func (w *Wunderground) Close() error {
	return nil
}

// do runs the request and returns the body of a 2xx response.
func do(client *http.Client, req *http.Request, name string) (string, error) {
	res, err := client.Do(req)
	if err != nil {
		return "", &UploadError{Target: name, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &UploadError{Target: name, Status: res.StatusCode, Err: err}
	}
	resString := fmt.Sprintf("%s", body)
	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := strings.TrimSpace(resString)
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return "", &UploadError{Target: name, Status: res.StatusCode, Err: errors.New(msg)}
	}
	jww.INFO.Println("Server response:", strings.TrimSpace(resString))
	return resString, nil
}
