package httpapi

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"ai-room-temperature-service/internal/config"
	"ai-room-temperature-service/internal/events"
	"ai-room-temperature-service/internal/models"
	"ai-room-temperature-service/internal/service/analysis"
)

// fakePipeline returns a scripted analysis result and records staged paths.
type fakePipeline struct {
	calls  int
	paths  []string
	result analysis.Result
}

func (f *fakePipeline) AnalyzeFile(ctx context.Context, audioPath string) analysis.Result {
	f.calls++
	f.paths = append(f.paths, audioPath)
	return f.result
}

func successResult() analysis.Result {
	return analysis.Result{
		Success:             true,
		Temperature:         58,
		Confidence:          0.8,
		AnalysisSummary:     "Tense discussion about finances",
		Transcript:          "the quarterly numbers look terrible",
		TranscriptLength:    35,
		Topics:              []string{"finances"},
		EmotionalIndicators: []string{"concern"},
		Timestamp:           time.Now().UTC(),
	}
}

func newTestRouter(t *testing.T, p Pipeline, mutate func(*config.Configuration)) http.Handler {
	t.Helper()
	cfg := &config.Configuration{
		MaxFileSizeMB:    25,
		MinAudioDuration: time.Second,
		MaxAudioDuration: 5 * time.Minute,
		UploadDir:        t.TempDir(),
		CORSOrigins:      []string{"*"},
	}
	if mutate != nil {
		mutate(cfg)
	}
	h := NewHandler(cfg, p, events.New(nil))
	return NewRouter(h, cfg.CORSOrigins)
}

// wavBytes builds a canonical 16-bit mono PCM WAV of the given duration.
func wavBytes(seconds float64) []byte {
	const sampleRate = 8000
	dataLen := int(seconds*sampleRate) * 2

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(make([]byte, dataLen))
	return buf.Bytes()
}

// uploadRequest builds a multipart POST with the payload in the given field.
func uploadRequest(t *testing.T, field, filename string, payload []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze-audio", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, body io.Reader) models.ErrorResponse {
	t.Helper()
	var e models.ErrorResponse
	if err := json.NewDecoder(body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &fakePipeline{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %q", body["status"])
	}
	if body["version"] == "" {
		t.Error("version missing")
	}
}

func TestAnalyzeAudio_MissingField(t *testing.T) {
	pipeline := &fakePipeline{}
	router := newTestRouter(t, pipeline, nil)

	req := uploadRequest(t, "file", "clip.wav", wavBytes(2))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if e := decodeError(t, rec.Body); e.Error != "No audio file provided" {
		t.Errorf("error = %q", e.Error)
	}
	if pipeline.calls != 0 {
		t.Error("pipeline must not run")
	}
}

func TestAnalyzeAudio_BadExtension(t *testing.T) {
	router := newTestRouter(t, &fakePipeline{}, nil)

	req := uploadRequest(t, "audio", "notes.txt", []byte("plain text"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if e := decodeError(t, rec.Body); e.Error != "Invalid audio file" {
		t.Errorf("error = %q", e.Error)
	}
}

func TestAnalyzeAudio_TooLarge(t *testing.T) {
	router := newTestRouter(t, &fakePipeline{}, func(cfg *config.Configuration) {
		cfg.MaxFileSizeMB = 1
	})

	payload := make([]byte, 2*1024*1024)
	req := uploadRequest(t, "audio", "clip.wav", payload)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
	if e := decodeError(t, rec.Body); e.Error != "File too large" {
		t.Errorf("error = %q", e.Error)
	}
}

func TestAnalyzeAudio_TooShort(t *testing.T) {
	pipeline := &fakePipeline{}
	router := newTestRouter(t, pipeline, nil)

	req := uploadRequest(t, "audio", "clip.wav", wavBytes(0.5))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if e := decodeError(t, rec.Body); e.Error != "Invalid audio duration" {
		t.Errorf("error = %q", e.Error)
	}
	if pipeline.calls != 0 {
		t.Error("pipeline must not run on invalid duration")
	}
}

func TestAnalyzeAudio_Success(t *testing.T) {
	pipeline := &fakePipeline{result: successResult()}
	router := newTestRouter(t, pipeline, nil)

	req := uploadRequest(t, "audio", "clip.wav", wavBytes(2))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.AnalysisResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.AnalysisID == "" {
		t.Error("analysis id missing")
	}
	if resp.Temperature != 58 || resp.Confidence != 0.8 {
		t.Errorf("got %d/%f", resp.Temperature, resp.Confidence)
	}
	if resp.AudioDuration < 1.9 || resp.AudioDuration > 2.1 {
		t.Errorf("audio duration = %f, want ~2", resp.AudioDuration)
	}
	if resp.TranscriptLength != 35 {
		t.Errorf("transcript length = %d", resp.TranscriptLength)
	}
	// Not in debug mode: no transcript echo
	if resp.Transcript != "" || resp.Topics != nil {
		t.Error("debug fields leaked into a non-debug response")
	}
	if pipeline.calls != 1 {
		t.Errorf("pipeline calls = %d", pipeline.calls)
	}
	if _, err := os.Stat(pipeline.paths[0]); !os.IsNotExist(err) {
		t.Errorf("staged file %q not cleaned up", pipeline.paths[0])
	}
}

func TestAnalyzeAudio_DebugResponse(t *testing.T) {
	pipeline := &fakePipeline{result: successResult()}
	router := newTestRouter(t, pipeline, func(cfg *config.Configuration) {
		cfg.Debug = true
	})

	req := uploadRequest(t, "audio", "clip.wav", wavBytes(2))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp models.AnalysisResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Transcript != "the quarterly numbers look terrible" {
		t.Errorf("transcript = %q", resp.Transcript)
	}
	if len(resp.Topics) != 1 || resp.Topics[0] != "finances" {
		t.Errorf("topics = %v", resp.Topics)
	}
}

func TestAnalyzeAudio_AnalysisIncomplete(t *testing.T) {
	pipeline := &fakePipeline{result: analysis.Result{
		Success:         false,
		Error:           "Transcription failed: connection refused",
		Temperature:     30,
		Confidence:      0.1,
		AnalysisSummary: "Analysis failed due to transcription error",
		Timestamp:       time.Now().UTC(),
	}}
	router := newTestRouter(t, pipeline, nil)

	req := uploadRequest(t, "audio", "clip.wav", wavBytes(2))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp models.AnalysisErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "Analysis incomplete" {
		t.Errorf("error = %q", resp.Error)
	}
	if resp.Temperature != 30 || resp.Confidence != 0.1 {
		t.Errorf("fallback verdict = %d/%f", resp.Temperature, resp.Confidence)
	}
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(t, &fakePipeline{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if e := decodeError(t, rec.Body); e.Error != "Endpoint not found" {
		t.Errorf("error = %q", e.Error)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, &fakePipeline{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/analyze-audio", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}
