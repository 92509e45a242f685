package adminapi

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/webestoque/config"
	"github.com/talkincode/webestoque/internal/domain"
	"github.com/talkincode/webestoque/internal/inventory"
	"github.com/talkincode/webestoque/internal/render"
	"github.com/talkincode/webestoque/internal/storage"
	"github.com/talkincode/webestoque/internal/webserver"
)

// client replays the session cookie between requests.
type client struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func (cl *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range cl.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		cl.cookies[ck.Name] = ck
	}
	return rec
}

func (cl *client) get(target string) *httptest.ResponseRecorder {
	return cl.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (cl *client) postForm(target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return cl.do(req)
}

func (cl *client) postJSON(target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return cl.do(req)
}

func (cl *client) postMultipart(target string, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(cl.t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "spool.png")
		require.NoError(cl.t, err)
		_, err = fw.Write(image)
		require.NoError(cl.t, err)
	}
	require.NoError(cl.t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return cl.do(req)
}

func newTestServer(t *testing.T) (*client, *inventory.Service, *Handlers) {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.Storage.Type = "memory"

	svc := inventory.NewService(storage.NewMemoryKV(), EventBus.New())
	binder, err := render.NewBinder(render.MustMoney("pt-BR", "BRL"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHandlers(ctx, svc, binder)
	s := webserver.NewWebServer(&cfg)
	h.Init(s)
	return &client{t: t, e: s.Echo(), cookies: map[string]*http.Cookie{}}, svc, h
}

func spool(qty int) domain.Fields {
	return domain.Fields{
		Name:         "PLA Vermelho",
		FilamentType: "PLA",
		Colors:       "Vermelho",
		Weight:       1000,
		Dimensions:   "1.75mm",
		Price:        89.9,
		Quantity:     qty,
		Description:  "Carretel de 1kg",
	}
}

func validFields() map[string]string {
	return map[string]string{
		"id":           "",
		"name":         "PETG Preto",
		"filamentType": "PETG",
		"colors":       "Preto",
		"weight":       "500,5",
		"dimensions":   "1.75mm",
		"price":        "120",
		"quantity":     "4",
		"description":  "Carretel <meio kg>",
	}
}

func TestIndex_EmptyTable(t *testing.T) {
	cl, _, _ := newTestServer(t)
	rec := cl.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), render.EmptyTableText)
	assert.Contains(t, rec.Body.String(), "Cadastrar Produto")
}

func TestSubmitProduct_CreatesAndFlashes(t *testing.T) {
	cl, svc, _ := newTestServer(t)

	rec := cl.postMultipart("/products", validFields(), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	products := svc.List()
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, 500.5, products[0].Weight)

	page := cl.get("/").Body.String()
	assert.Contains(t, page, "Produto cadastrado com sucesso.")
	assert.Contains(t, page, "PETG Preto")
	assert.Contains(t, page, "500.5 g")

	// the flash is shown once
	assert.NotContains(t, cl.get("/").Body.String(), "Produto cadastrado com sucesso.")
}

func TestSubmitProduct_ValidationKeepsValues(t *testing.T) {
	cl, svc, _ := newTestServer(t)
	fields := validFields()
	fields["name"] = "  "
	fields["colors"] = ""

	rec := cl.postMultipart("/products", fields, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Campos obrigatórios: Nome, Cores.")
	assert.Contains(t, rec.Body.String(), `value="500,5"`)
	assert.Empty(t, svc.List())
}

func TestSubmitProduct_EditWithImage(t *testing.T) {
	cl, svc, _ := newTestServer(t)
	p := svc.Create(spool(2), "")

	edit := cl.get("/products/1/edit")
	require.Equal(t, http.StatusOK, edit.Code)
	assert.Contains(t, edit.Body.String(), "Editar Produto")
	assert.Contains(t, edit.Body.String(), `value="PLA Vermelho"`)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	fields := validFields()
	fields["id"] = "1"
	rec := cl.postMultipart("/products", fields, png)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	got, err := svc.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "PETG Preto", got.Name)
	assert.True(t, strings.HasPrefix(got.ImageDataURL, "data:image/png;base64,"))
	assert.Contains(t, cl.get("/").Body.String(), "Produto atualizado com sucesso.")

	fields["removeImage"] = "1"
	cl.postMultipart("/products", fields, nil)
	got, _ = svc.Get(p.ID)
	assert.Empty(t, got.ImageDataURL)
}

func TestSubmitProduct_RejectsNonImage(t *testing.T) {
	cl, svc, _ := newTestServer(t)
	rec := cl.postMultipart("/products", validFields(), []byte("plain text, not a picture"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), inventory.ErrNotAnImage.Error())
	assert.Empty(t, svc.List())
}

func TestEditUnknownProduct(t *testing.T) {
	cl, _, _ := newTestServer(t)
	rec := cl.get("/products/42/edit")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, cl.get("/").Body.String(), "Produto não encontrado.")
}

func TestBuyDialog(t *testing.T) {
	cl, svc, h := newTestServer(t)
	svc.Create(spool(5), "")

	require.Equal(t, http.StatusSeeOther, cl.postForm("/products/1/buy", nil).Code)
	page := cl.get("/").Body.String()
	assert.Contains(t, page, `id="buy-modal"`)

	derived := cl.get("/modal/derived?quantity=2")
	assert.Equal(t, h.binder.Money.Format(179.8), derived.Body.String())
	assert.Empty(t, cl.get("/modal/derived?quantity=abc").Body.String())

	cl.postForm("/modal/confirm", url.Values{"quantity": {"10"}})
	page = cl.get("/").Body.String()
	assert.Contains(t, page, `id="buy-modal"`)
	assert.Contains(t, page, inventory.ErrInsufficientStock.Error())
	p, _ := svc.Get(1)
	assert.Equal(t, 5, p.Quantity)

	cl.postForm("/modal/confirm", url.Values{"quantity": {"2"}})
	page = cl.get("/").Body.String()
	assert.NotContains(t, page, `id="buy-modal"`)
	assert.Contains(t, page, "Compra realizada com sucesso! 2 unidade(s) removida(s) do estoque.")
	p, _ = svc.Get(1)
	assert.Equal(t, 3, p.Quantity)
}

func TestDeleteDialog_CloseThenConfirm(t *testing.T) {
	cl, svc, h := newTestServer(t)
	svc.Create(spool(1), "")

	cl.postForm("/products/1/delete", nil)
	require.NotNil(t, h.Modal().View())
	cl.postForm("/modal/close", nil)
	assert.Nil(t, h.Modal().View())
	assert.Len(t, svc.List(), 1)

	// confirming with no open dialog is a no-op
	assert.Equal(t, http.StatusSeeOther, cl.postForm("/modal/confirm", nil).Code)
	assert.Len(t, svc.List(), 1)

	cl.postForm("/products/1/delete", nil)
	cl.postForm("/modal/confirm", nil)
	assert.Empty(t, svc.List())
	assert.Contains(t, cl.get("/").Body.String(), "Produto excluído com sucesso.")
}

func TestOpenDialog_UnknownProduct(t *testing.T) {
	cl, _, h := newTestServer(t)
	cl.postForm("/products/7/restock", nil)
	assert.Nil(t, h.Modal().View())
	assert.Contains(t, cl.get("/").Body.String(), "Produto não encontrado.")
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAPI_Products(t *testing.T) {
	cl, svc, _ := newTestServer(t)
	svc.Create(spool(1), "")

	rec := cl.get("/api/products")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SUCCESS", decode(t, rec).Code)
	assert.Contains(t, rec.Body.String(), `"filamentType":"PLA"`)

	assert.Equal(t, http.StatusNotFound, cl.get("/api/products/9").Code)
	assert.Equal(t, http.StatusBadRequest, cl.get("/api/products/x").Code)

	rec = cl.postJSON("/api/products/1/purchase", `{"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_QUANTITY", decode(t, rec).Code)

	rec = cl.postJSON("/api/products/1/purchase", `{"quantity":2}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode(t, rec).Code)

	require.Equal(t, http.StatusOK, cl.postJSON("/api/products/1/purchase", `{"quantity":1}`).Code)
	rec = cl.postJSON("/api/products/1/purchase", `{"quantity":1}`)
	assert.Equal(t, "OUT_OF_STOCK", decode(t, rec).Code)

	require.Equal(t, http.StatusOK, cl.postJSON("/api/products/1/restock", `{"quantity":3}`).Code)
	p, _ := svc.Get(1)
	assert.Equal(t, 3, p.Quantity)
}

func TestExport(t *testing.T) {
	cl, svc, _ := newTestServer(t)
	svc.Create(spool(1), "")

	rec := cl.get("/products.csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.HasPrefix(string(body), "id,name,"))

	rec = cl.get("/products.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxMIME, rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}
