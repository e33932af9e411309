package web

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/textdesk/internal/client/form"
	"github.com/dmitrijs2005/textdesk/internal/client/models"
	"github.com/dmitrijs2005/textdesk/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/textdesk/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ---- helpers ----

type stubClient struct {
	prompts []string
	resized []models.ResizeRequest
	langs   [][2]models.Language
	err     error
	resErr  error

	// when release is set, Generate signals started and waits for it
	started chan struct{}
	release chan struct{}
}

func (s *stubClient) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.release != nil {
		close(s.started)
		select {
		case <-s.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "generated", s.err
}

func (s *stubClient) Translate(_ context.Context, _ string, src, tgt models.Language) (string, error) {
	s.langs = append(s.langs, [2]models.Language{src, tgt})
	return `{"ok":true}`, s.err
}

func (s *stubClient) Resize(_ context.Context, req models.ResizeRequest) (string, error) {
	s.resized = append(s.resized, req)
	return base64.StdEncoding.EncodeToString([]byte("tiny")), s.resErr
}

type memSaver struct {
	data []byte
	err  error
}

func (m *memSaver) Save(_ context.Context, name string, data []byte) (string, error) {
	m.data = data
	return "mem://" + name, m.err
}

type testEnv struct {
	router *gin.Engine
	client *stubClient
	repo   *drafts.MemoryRepository
	form   *form.Controller
}

func newEnv(t *testing.T, saver *memSaver) *testEnv {
	t.Helper()
	sc := &stubClient{}
	repo := drafts.NewMemoryRepository()
	fc := form.New(repo, sc, logging.Discard())

	var srv *Server
	var err error
	if saver != nil {
		srv, err = NewServer(fc, saver, logging.Discard())
	} else {
		srv, err = NewServer(fc, nil, logging.Discard())
	}
	require.NoError(t, err)

	return &testEnv{router: srv.Router(), client: sc, repo: repo, form: fc}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) models.View {
	t.Helper()
	var v models.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (e *testEnv) stored(t *testing.T, key string) string {
	t.Helper()
	v, _, err := e.repo.Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

// ---- tests ----

func TestIndex_RendersState(t *testing.T) {
	env := newEnv(t, nil)
	require.NoError(t, env.form.SetPrompt(context.Background(), "<b>hi</b>"))

	w := env.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "&lt;b&gt;hi&lt;/b&gt;")
	assert.Contains(t, body, `<option value="te_IN" selected>Telugu</option>`)
	assert.NotContains(t, body, `id="export"`)
}

func TestIndex_ShowsResultImage(t *testing.T) {
	env := newEnv(t, &memSaver{})
	env.form.SelectFile(&models.ImageFile{Name: "a.png", MIME: "image/png", Data: []byte{1}})
	require.NoError(t, env.form.Resize(context.Background()))

	w := env.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `src="data:image/jpeg;base64,dGlueQ=="`)
	assert.Contains(t, w.Body.String(), `id="export"`)
}

func TestState(t *testing.T) {
	env := newEnv(t, nil)

	v := decodeView(t, env.do(t, http.MethodGet, "/api/state", nil))
	assert.Equal(t, models.LanguageTelugu, v.SourceLanguage)
	assert.Equal(t, "80", v.Quality)
}

func TestFields_WriteThrough(t *testing.T) {
	env := newEnv(t, nil)

	w := env.do(t, http.MethodPut, "/api/fields/prompt", gin.H{"value": "abc"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", decodeView(t, w).Prompt)

	w = env.do(t, http.MethodPut, "/api/fields/editor", gin.H{"value": "notes"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "abc", env.stored(t, models.KeyInputText))
	assert.Equal(t, "notes", env.stored(t, models.KeyEditorText))
}

func TestFields_EmptyValueAllowed(t *testing.T) {
	env := newEnv(t, nil)
	require.NoError(t, env.form.SetPrompt(context.Background(), "x"))

	w := env.do(t, http.MethodPut, "/api/fields/prompt", gin.H{"value": ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", env.stored(t, models.KeyInputText))
}

func TestFields_MissingValue(t *testing.T) {
	env := newEnv(t, nil)

	w := env.do(t, http.MethodPut, "/api/fields/prompt", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLanguages(t *testing.T) {
	env := newEnv(t, nil)

	w := env.do(t, http.MethodPut, "/api/languages", gin.H{"src_lang": "en_XX"})
	require.Equal(t, http.StatusOK, w.Code)
	v := decodeView(t, w)
	assert.Equal(t, models.LanguageEnglish, v.SourceLanguage)
	assert.Equal(t, models.LanguageEnglish, v.TargetLanguage)

	w = env.do(t, http.MethodPut, "/api/languages", gin.H{"tgt_lang": "fr_FR"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.LanguageEnglish, env.form.View().TargetLanguage)
}

func TestKeyDown(t *testing.T) {
	env := newEnv(t, nil)
	require.NoError(t, env.form.SetPrompt(context.Background(), "p"))

	v := decodeView(t, env.do(t, http.MethodPost, "/api/keydown", gin.H{"key": "a"}))
	assert.Empty(t, v.Output)
	assert.Empty(t, env.client.prompts)

	v = decodeView(t, env.do(t, http.MethodPost, "/api/keydown", gin.H{"key": "Enter"}))
	assert.Equal(t, "generated", v.Output)
	assert.Equal(t, []string{"p"}, env.client.prompts)
	assert.Empty(t, env.client.langs, "Enter never translates")
}

func TestKeyDown_EnterUsesSubmittedValue(t *testing.T) {
	env := newEnv(t, nil)
	require.NoError(t, env.form.SetPrompt(context.Background(), "a"))

	w := env.do(t, http.MethodPost, "/api/keydown", gin.H{"key": "Enter", "value": "ab"})
	require.Equal(t, http.StatusOK, w.Code)
	v := decodeView(t, w)

	assert.Equal(t, []string{"ab"}, env.client.prompts)
	assert.Equal(t, "ab", v.Prompt)
	assert.Equal(t, "ab", env.stored(t, models.KeyInputText))
}

func TestKeyDown_OtherKeyStoresValueOnly(t *testing.T) {
	env := newEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/keydown", gin.H{"key": "b", "value": "ab"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.client.prompts)
	assert.Equal(t, "ab", env.stored(t, models.KeyInputText))
}

func TestGenerate_CompletesAfterBrowserAbort(t *testing.T) {
	env := newEnv(t, nil)
	env.client.started = make(chan struct{})
	env.client.release = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/api/generate", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		env.router.ServeHTTP(w, req)
		close(done)
	}()

	<-env.client.started
	cancel()
	close(env.client.release)
	<-done

	assert.Equal(t, "generated", env.form.View().Output)
	assert.Equal(t, "generated", env.stored(t, models.KeyOutputText))
	assert.False(t, env.form.View().Loading)
}

func TestGenerateAndTranslate(t *testing.T) {
	env := newEnv(t, nil)

	v := decodeView(t, env.do(t, http.MethodPost, "/api/generate", nil))
	assert.Equal(t, "generated", v.Output)
	assert.False(t, v.Loading)

	v = decodeView(t, env.do(t, http.MethodPost, "/api/translate", nil))
	assert.Equal(t, `{"ok":true}`, v.Output)
	assert.Equal(t, `{"ok":true}`, env.stored(t, models.KeyOutputText))
}

func TestGenerate_FailureIsInState(t *testing.T) {
	env := newEnv(t, nil)
	env.client.err = errors.New("down")

	w := env.do(t, http.MethodPost, "/api/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, form.ErrorMessage, decodeView(t, w).Output)
}

func uploadImage(t *testing.T, env *testEnv, name string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestImageResizeExport(t *testing.T) {
	saver := &memSaver{}
	env := newEnv(t, saver)

	w := uploadImage(t, env, "cat.png", []byte("pngbytes"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cat.png", decodeView(t, w).FileName)

	w = env.do(t, http.MethodPut, "/api/resize/params", gin.H{"ratio": "0.5"})
	require.Equal(t, http.StatusOK, w.Code)
	v := decodeView(t, w)
	assert.Equal(t, "0.5", v.Ratio)
	assert.Equal(t, "80", v.Quality)

	w = env.do(t, http.MethodPost, "/api/resize", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dGlueQ==", decodeView(t, w).Result)

	require.Len(t, env.client.resized, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("pngbytes")), env.client.resized[0].Base64Image)

	w = env.do(t, http.MethodPost, "/api/resize/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, strings.HasPrefix(out["location"], "mem://resized-"))
	assert.Equal(t, []byte("tiny"), saver.data)
}

func TestImage_MissingFile(t *testing.T) {
	env := newEnv(t, nil)
	w := env.do(t, http.MethodPost, "/api/image", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResize_Errors(t *testing.T) {
	env := newEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/resize", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.form.SelectFile(&models.ImageFile{Name: "a.png", MIME: "image/png", Data: []byte{1}})
	env.client.resErr = errors.New("bad gateway")
	w = env.do(t, http.MethodPost, "/api/resize", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, env.form.View().Output, "resize failures do not touch the output")
}

func TestExport_Errors(t *testing.T) {
	env := newEnv(t, nil)
	w := env.do(t, http.MethodPost, "/api/resize/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	env = newEnv(t, &memSaver{})
	w = env.do(t, http.MethodPost, "/api/resize/export", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	saver := &memSaver{err: errors.New("disk full")}
	env = newEnv(t, saver)
	env.form.SelectFile(&models.ImageFile{Name: "a.png", MIME: "image/png", Data: []byte{1}})
	require.NoError(t, env.form.Resize(context.Background()))
	w = env.do(t, http.MethodPost, "/api/resize/export", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReset(t *testing.T) {
	env := newEnv(t, nil)
	require.NoError(t, env.form.SetPrompt(context.Background(), "p"))

	v := decodeView(t, env.do(t, http.MethodPost, "/api/reset", nil))
	assert.Empty(t, v.Prompt)

	all, err := env.repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
