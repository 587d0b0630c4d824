package v1

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desaparecidos/internal/core/apperror"
	"desaparecidos/internal/domain/registry"
	"desaparecidos/internal/domain/submission"
	"desaparecidos/internal/infrastructure/abitus"
	"desaparecidos/pkg/logger"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

// fakeRegistry emulates the upstream registry API.
type fakeRegistry struct {
	down atomic.Bool
}

func (f *fakeRegistry) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.down.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	person := map[string]any{
		"id": 10, "nome": "Maria Souza", "idade": 31, "sexo": "FEMININO", "vivo": true,
		"urlFoto": "https://example.com/10.jpg",
		"ultimaOcorrencia": map[string]any{
			"ocoId": 99, "dtDesaparecimento": "2024-05-01T10:00:00",
			"localDesaparecimentoConcat": "Cuiabá/MT",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/v1/pessoas/aberto/estatistico":
		_ = json.NewEncoder(w).Encode(map[string]int{"quantPessoasDesaparecidas": 300, "quantPessoasEncontradas": 100})
	case "/v1/pessoas/aberto/filtro":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"totalPages": 20, "totalElements": 240,
			"content": []any{person},
		})
	case "/v1/pessoas/aberto/dinamico":
		_ = json.NewEncoder(w).Encode([]any{person, map[string]any{"id": 11, "nome": "Sem Foto"}})
	case "/v1/pessoas/10":
		_ = json.NewEncoder(w).Encode(person)
	case "/v1/ocorrencias/informacoes-desaparecido":
		_ = json.NewEncoder(w).Encode([]any{map[string]any{"ocoId": 99, "informacao": "Vista na rodoviária", "data": "2024-05-03"}})
	default:
		http.NotFound(w, r)
	}
}

func newTestRouter(t *testing.T) (http.Handler, *fakeRegistry) {
	t.Helper()
	fake := &fakeRegistry{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := abitus.New(abitus.Config{
		BaseURL:        srv.URL + "/v1",
		Timeout:        time.Second,
		InitialBackoff: time.Millisecond,
		MaxElapsed:     time.Second,
	}, logger.NewNop())
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Registry:       registry.NewService(client, registry.DefaultServiceConfig()),
		Submissions:    submission.NewService(submission.DefaultLimits()),
		Upstream:       client,
		Logger:         logger.NewNop(),
		MaxUploadBytes: 1 << 20,
		Version:        "test",
	})
	return router, fake
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile(name, name+".png")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func tipFields() map[string]string {
	return map[string]string{
		"nome":             "João",
		"telefone":         "65999998888",
		"email":            "joao@example.com",
		"dataAvistamento":  "2025-03-01",
		"localAvistamento": "Centro",
		"informacoes":      "Vi perto da praça",
	}
}

func TestHomePage(t *testing.T) {
	router, _ := newTestRouter(t)

	w := get(t, router, "/?pagina_localizados=2")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Maria Souza")
	assert.Contains(t, body, "300")
	assert.Contains(t, body, "75%")
	assert.Contains(t, body, "Página 2 de 20")
	assert.NotContains(t, body, "Sem Foto")
}

func TestPages_PageBeyondLastIsClamped(t *testing.T) {
	router, _ := newTestRouter(t)

	w := get(t, router, "/?pagina_desaparecidos=500")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Página 20 de 20")

	w = get(t, router, "/buscar?pagina=500")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Página 20 de 20")

	w = get(t, router, "/api/v1/pessoas?pagina=500")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	window := body["window"].(map[string]any)
	assert.Equal(t, float64(19), window["current"])
	assert.Equal(t, false, window["hasNext"])
}

func TestHomePage_UpstreamDownShowsNotice(t *testing.T) {
	router, fake := newTestRouter(t)
	fake.down.Store(true)

	w := get(t, router, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fora do ar")
	assert.Contains(t, w.Body.String(), "Não foi possível carregar esta lista.")
}

func TestSearchPage_PaginatorKeepsFilters(t *testing.T) {
	router, _ := newTestRouter(t)

	w := get(t, router, "/buscar?nome=maria&sexo=FEMININO&pagina=5")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Página 5 de 20")
	assert.Contains(t, body, "/buscar?nome=maria&amp;pagina=6&amp;sexo=FEMININO")
	assert.Contains(t, body, "status=LOCALIZADO")
	assert.Contains(t, body, "…")
}

func TestSearchPage_InvalidAgeRange(t *testing.T) {
	router, _ := newTestRouter(t)

	w := get(t, router, "/buscar?faixaIdadeInicial=50&faixaIdadeFinal=20")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Verifique os dados informados.")
}

func TestPersonPage(t *testing.T) {
	router, _ := newTestRouter(t)

	w := get(t, router, "/pessoa/10")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Maria Souza")
	assert.Contains(t, body, "01/05/2024")
	assert.Contains(t, body, "Vista na rodoviária")
	assert.Contains(t, body, "/informacoes/10")
}

func TestPersonPage_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := get(t, router, "/pessoa/404")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Página não encontrada")
}

func TestPersonPage_InvalidID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := get(t, router, "/pessoa/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestStaticPages(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/sobre", "/contato", "/reportar-desaparecido", "/informacoes/10", "/static/app.css"} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusOK, get(t, router, path).Code)
		})
	}
}

func TestTipPage_Submit(t *testing.T) {
	router, _ := newTestRouter(t)

	body, ct := multipartBody(t, tipFields(), map[string][]byte{"foto_0": pngHeader})
	req := httptest.NewRequest(http.MethodPost, "/informacoes/10", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Informações recebidas com sucesso")
	assert.Contains(t, w.Body.String(), "Fotos recebidas: 1")
}

func TestTipPage_SubmitMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	fields := tipFields()
	fields["informacoes"] = "   "
	body, ct := multipartBody(t, fields, nil)
	req := httptest.NewRequest(http.MethodPost, "/informacoes/10", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "preencha todos os campos obrigatórios")
	// posted values are kept
	assert.Contains(t, w.Body.String(), `value="joao@example.com"`)
}

func TestContactPage_Submit(t *testing.T) {
	router, _ := newTestRouter(t)

	form := url.Values{
		"nome":     {"Ana"},
		"email":    {"ana@example.com"},
		"assunto":  {"Dúvida"},
		"mensagem": {"Olá"},
	}
	req := httptest.NewRequest(http.MethodPost, "/contato", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mensagem enviada com sucesso")
}

func TestReportPage_RequiresPhoto(t *testing.T) {
	router, _ := newTestRouter(t)

	body, ct := multipartBody(t, map[string]string{
		"nomePessoa":           "Pedro",
		"idade":                "40",
		"sexo":                 "MASCULINO",
		"dataDesaparecimento":  "2025-01-01",
		"localDesaparecimento": "Várzea Grande",
		"circunstancias":       "Saiu e não voltou",
		"nomeInformante":       "Lucia",
		"telefone":             "65988887777",
		"email":                "lucia@example.com",
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/reportar-desaparecido", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "field-missing")
}

func TestAPI_SubmitTip(t *testing.T) {
	router, _ := newTestRouter(t)

	body, ct := multipartBody(t, tipFields(), map[string][]byte{"foto_0": pngHeader, "foto_1": pngHeader})
	req := httptest.NewRequest(http.MethodPost, "/api/informacoes/10", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			PersonID   string `json:"pessoaId"`
			Phone      string `json:"telefone"`
			PhotoCount int    `json:"quantidadeFotos"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Informações recebidas com sucesso", resp.Message)
	assert.Equal(t, "10", resp.Data.PersonID)
	assert.Equal(t, "(65) 99999-8888", resp.Data.Phone)
	assert.Equal(t, 2, resp.Data.PhotoCount)
}

func TestAPI_SubmitTip_RejectsNonImage(t *testing.T) {
	router, _ := newTestRouter(t)

	body, ct := multipartBody(t, tipFields(), map[string][]byte{"foto_0": []byte("%PDF-1.4 not an image")})
	req := httptest.NewRequest(http.MethodPost, "/api/informacoes/10", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestAPI_SubmitTip_BodyTooLarge(t *testing.T) {
	router, _ := newTestRouter(t)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2<<20)...)
	body, ct := multipartBody(t, tipFields(), map[string][]byte{"foto_0": big})
	req := httptest.NewRequest(http.MethodPost, "/api/informacoes/10", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestAPI_Search(t *testing.T) {
	router, _ := newTestRouter(t)

	w := get(t, router, "/api/v1/pessoas?pagina=3&status=LOCALIZADO")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Page   int `json:"pagina"`
		Window struct {
			Current int              `json:"current"`
			Total   int              `json:"total"`
			Entries []map[string]any `json:"entries"`
		} `json:"window"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Page)
	assert.Equal(t, 20, resp.Window.Total)
	assert.NotEmpty(t, resp.Window.Entries)
}

func TestAPI_UpstreamDown(t *testing.T) {
	router, fake := newTestRouter(t)
	fake.down.Store(true)

	w := get(t, router, "/api/v1/estatisticas")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperror.CodeUpstream, resp["code"])
	assert.Equal(t, apperror.UpstreamMessage, resp["message"])
}

func TestAPI_PersonAndInfos(t *testing.T) {
	router, _ := newTestRouter(t)

	w := get(t, router, "/api/v1/pessoas/10")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"desaparecido":true`)
	assert.Contains(t, w.Body.String(), "Vista na rodoviária")

	assert.Equal(t, http.StatusNotFound, get(t, router, "/api/v1/pessoas/404").Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/api/v1/ocorrencias/99/informacoes").Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/api/v1/pessoas/aleatorias?registros=4").Code)
}

func TestAPI_Mask(t *testing.T) {
	router, _ := newTestRouter(t)

	post := func(body string) map[string]any {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/mascara", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	resp := post(`{"value":"65 99999 8888"}`)
	assert.Equal(t, "(65) 99999-8888", resp["masked"])
	assert.Equal(t, true, resp["complete"])

	resp = post(`{"value":"abc123","mask":"AA-999"}`)
	assert.Equal(t, "ab-123", resp["masked"])

	resp = post(`{"value":"65","typing":true}`)
	assert.Equal(t, "(65", resp["masked"])
	assert.Equal(t, false, resp["complete"])
}

func TestHealthAndMetrics(t *testing.T) {
	router, fake := newTestRouter(t)

	assert.Equal(t, http.StatusOK, get(t, router, "/health/live").Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/health/ready").Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/health/info").Code)

	fake.down.Store(true)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, router, "/health/ready").Code)

	w := get(t, router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "desaparecidos_http_requests_total")
}

func TestNoRoute(t *testing.T) {
	router, _ := newTestRouter(t)

	w := get(t, router, "/nao-existe")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Página não encontrada")

	w = get(t, router, "/api/v1/nao-existe")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}
