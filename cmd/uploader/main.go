// Command uploader sends an invoice image to a running server's streaming
// upload endpoint and prints step progress as it arrives.
// Usage: go run ./cmd/uploader -file invoice.png [-server http://localhost:8080] [-save]
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"docex/internal/session"
	"docex/internal/stream"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	server := flag.String("server", "http://localhost:8080", "server base URL")
	file := flag.String("file", "", "invoice image to upload")
	save := flag.Bool("save", false, "persist the extraction as an order")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall request timeout")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		return fmt.Errorf("-file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	body, contentType, err := buildMultipart(filepath.Base(*file), data, *save)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *server+"/api/invoices/upload-stream", body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	state := consume(resp.Body)
	return report(state)
}

// consume drives the session state from the response stream, printing each
// step transition as it is applied.
func consume(body io.Reader) session.State {
	state := session.State{}
	printed := map[string]string{}

	dec := stream.NewDecoder(body)
	for !state.Done {
		ev, err := dec.Next()
		if err != nil {
			// EOF without a result frame is a lost connection either way.
			state = session.Reduce(state, session.ResultReceived{Event: stream.ResultEvent{
				Success: false,
				Error: &stream.ErrorInfo{
					Code:    session.NetworkErrorCode,
					Message: "connection to server lost",
				},
			}})
			break
		}
		switch {
		case ev.Step != nil:
			state = session.Reduce(state, session.StepUpdated{Event: *ev.Step})
		case ev.Result != nil:
			state = session.Reduce(state, session.ResultReceived{Event: *ev.Result})
		}
		render(state, printed)
	}
	return state
}

func render(state session.State, printed map[string]string) {
	for _, step := range state.Steps {
		key := string(step.Status) + "/" + step.Message
		if printed[step.ID] == key {
			continue
		}
		printed[step.ID] = key
		fmt.Printf("[%-8s] %-10s %s\n", step.Status, step.ID, step.Message)
	}
}

func report(state session.State) error {
	if state.Result == nil {
		return fmt.Errorf("session ended without a result")
	}
	if !state.Result.Success {
		if state.Result.Error != nil {
			return fmt.Errorf("%s: %s", state.Result.Error.Code, state.Result.Error.Message)
		}
		return fmt.Errorf("upload failed")
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, state.Result.Data, "", "  "); err != nil {
		fmt.Println(string(state.Result.Data))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}

func buildMultipart(filename string, data []byte, save bool) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if save {
		if err := w.WriteField("save_to_db", "true"); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
