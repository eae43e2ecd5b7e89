// Command analyzeclient uploads an audio clip to a running service instance
// and prints the temperature verdict.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

func main() {
	audioFile := flag.String("audio", "testdata/sample.wav", "Path to the audio clip to analyze")
	serverAddr := flag.String("server", "http://localhost:5000", "Service base URL")
	timeout := flag.Duration("timeout", 3*time.Minute, "Overall request timeout")
	flag.Parse()

	f, err := os.Open(*audioFile)
	if err != nil {
		log.Fatalf("Failed to open audio file: %v", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("audio", filepath.Base(*audioFile))
	if err != nil {
		log.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		log.Fatalf("Failed to read audio file: %v", err)
	}
	if err := mw.Close(); err != nil {
		log.Fatalf("Failed to finalize form: %v", err)
	}

	client := &http.Client{Timeout: *timeout}
	url := *serverAddr + "/v1/analyze-audio"

	log.Printf("Uploading %s to %s", *audioFile, url)
	start := time.Now()

	resp, err := client.Post(url, mw.FormDataContentType(), &body)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}

	log.Printf("Status %d in %v", resp.StatusCode, time.Since(start).Round(time.Millisecond))
	fmt.Println(string(payload))
}
