package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/listacompras/listacompras/models"
)

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, models.AutoMigrate(db))

	return New(db, slog.New(slog.NewTextHandler(io.Discard, nil))), db
}

type apiResponse struct {
	Respuesta json.RawMessage `json:"respuesta"`
	Error     string          `json:"Error"`
}

func call(t *testing.T, h http.Handler, method, url, body string) (int, apiResponse) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

func createdID(t *testing.T, status int, resp apiResponse) uint {
	t.Helper()
	require.Equal(t, http.StatusOK, status, resp.Error)
	var id uint
	require.NoError(t, json.Unmarshal(resp.Respuesta, &id))
	require.NotZero(t, id)
	return id
}

func TestShoppingListScenario(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	status, resp := call(t, h, "POST", "/categoria", `{"nombre":"fruit"}`)
	categoryID := createdID(t, status, resp)

	status, resp = call(t, h, "POST", "/categoria", `{"nombre":"FRUIT"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, resp = call(t, h, "GET", fmt.Sprintf("/categoria/%d", categoryID), "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"nombre":"FRUIT"}`, categoryID), string(resp.Respuesta))

	status, resp = call(t, h, "POST", "/producto", `{"nombre":"apple","categoria_id":999}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, resp = call(t, h, "POST", "/producto", fmt.Sprintf(`{"nombre":"apple","categoria_id":%d}`, categoryID))
	productID := createdID(t, status, resp)

	status, resp = call(t, h, "GET", fmt.Sprintf("/producto/%d", productID), "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"nombre":"APPLE","descripcion":"","categoria_id":%d}`, productID, categoryID), string(resp.Respuesta))

	status, resp = call(t, h, "POST", "/lista", fmt.Sprintf(`{"nombre":"Weekly","items":[{"producto_id":%d,"cantidad":3}]}`, productID))
	listID := createdID(t, status, resp)

	status, resp = call(t, h, "GET", fmt.Sprintf("/lista/%d", listID), "")
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Nombre string `json:"nombre"`
		Items  []struct {
			ProductoID uint    `json:"producto_id"`
			Cantidad   float64 `json:"cantidad"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Respuesta, &list))
	assert.Equal(t, "Weekly", list.Nombre)
	require.Len(t, list.Items, 1)
	assert.Equal(t, productID, list.Items[0].ProductoID)
	assert.Equal(t, 3.0, list.Items[0].Cantidad)

	status, _ = call(t, h, "DELETE", fmt.Sprintf("/producto/%d", productID), "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, h, "DELETE", fmt.Sprintf("/categoria/%d", categoryID), "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, h, "DELETE", fmt.Sprintf("/lista/%d", listID), "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, h, "GET", fmt.Sprintf("/lista/%d", listID), "")
	assert.Equal(t, http.StatusNotFound, status)

	status, resp = call(t, h, "DELETE", fmt.Sprintf("/producto/%d", productID), "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `1`, string(resp.Respuesta))

	status, resp = call(t, h, "DELETE", fmt.Sprintf("/categoria/%d", categoryID), "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `1`, string(resp.Respuesta))
}

func TestCreateListIsAllOrNothing(t *testing.T) {
	s, db := newTestServer(t)
	h := s.Handler()

	status, resp := call(t, h, "POST", "/categoria", `{"nombre":"almacen"}`)
	categoryID := createdID(t, status, resp)
	status, resp = call(t, h, "POST", "/producto", fmt.Sprintf(`{"nombre":"arroz","categoria_id":%d}`, categoryID))
	productID := createdID(t, status, resp)

	body := fmt.Sprintf(`{"nombre":"Semanal","items":[{"producto_id":%d,"cantidad":1},{"producto_id":%d,"cantidad":1}]}`, productID, productID+50)
	status, resp = call(t, h, "POST", "/lista", body)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, resp.Error, fmt.Sprint(productID+50))

	var headers, items int64
	require.NoError(t, db.Model(&models.ListHeader{}).Count(&headers).Error)
	require.NoError(t, db.Model(&models.ListItem{}).Count(&items).Error)
	assert.Zero(t, headers)
	assert.Zero(t, items)

	status, resp = call(t, h, "GET", "/lista", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(resp.Respuesta))
}

func TestDeleteItemOfAnotherList(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	status, resp := call(t, h, "POST", "/categoria", `{"nombre":"almacen"}`)
	categoryID := createdID(t, status, resp)
	status, resp = call(t, h, "POST", "/producto", fmt.Sprintf(`{"nombre":"arroz","categoria_id":%d}`, categoryID))
	productID := createdID(t, status, resp)
	item := fmt.Sprintf(`{"producto_id":%d,"cantidad":2}`, productID)

	status, resp = call(t, h, "POST", "/lista", `{"nombre":"A","items":[`+item+`]}`)
	listA := createdID(t, status, resp)
	status, resp = call(t, h, "POST", "/lista", `{"nombre":"B","items":[`+item+`]}`)
	listB := createdID(t, status, resp)

	// Item ids are assigned in insert order: list A owns item 1, list B item 2.
	status, resp = call(t, h, "PUT", fmt.Sprintf("/lista/%d/producto/%d", listA, 2), "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `0`, string(resp.Respuesta))

	status, resp = call(t, h, "GET", fmt.Sprintf("/lista/%d", listB), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Respuesta), `"producto_id"`)

	status, resp = call(t, h, "PUT", fmt.Sprintf("/lista/%d", listA), `{"nombre":"C"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.Equal(t, "metodo no permitido", resp.Error)
}

func TestRouterEdges(t *testing.T) {
	s, db := newTestServer(t)
	h := s.Handler()

	status, resp := call(t, h, "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `"ok"`, string(resp.Respuesta))

	status, resp = call(t, h, "GET", "/nada", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ruta inexistente", resp.Error)

	status, _ = call(t, h, "PATCH", "/categoria/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, status)

	status, _ = call(t, h, "GET", "/categoria/", "")
	assert.Equal(t, http.StatusOK, status)

	req := httptest.NewRequest("GET", "/categoria", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/categoria", nil))
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	status, resp = call(t, h, "GET", "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, resp = call(t, h, "GET", "/categoria", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "no se pudieron obtener las categorias", resp.Error)
}

func TestOversizedBodyIsRejected(t *testing.T) {
	s, db := newTestServer(t)
	body := `{"nombre":"` + strings.Repeat("x", maxRequestBodySize) + `"}`

	status, resp := call(t, s.Handler(), "POST", "/categoria", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	assert.Equal(t, "el cuerpo de la peticion supera el maximo de 1048576 bytes", resp.Error)
	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecoveryMiddleware(t *testing.T) {
	s, _ := newTestServer(t)
	panicking := s.recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	panicking.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"Error":"error inesperado"}`, rec.Body.String())
}
