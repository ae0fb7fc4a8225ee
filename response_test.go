package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(gorm.ErrRecordNotFound) {
		t.Error("ErrRecordNotFound should classify as a miss")
	}
	if !isNotFound(fmt.Errorf("budget lookup: %w", gorm.ErrRecordNotFound)) {
		t.Error("wrapped ErrRecordNotFound should classify as a miss")
	}
	if isNotFound(errors.New("driver: bad connection")) {
		t.Error("a store fault must not classify as a miss")
	}
	if isNotFound(nil) {
		t.Error("nil is not a miss")
	}
}

func lookupErrorResponse(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	respondLookupError(c, "Budget not found", err)
	var env map[string]any
	if uerr := json.Unmarshal(rec.Body.Bytes(), &env); uerr != nil {
		t.Fatalf("bad envelope: %v", uerr)
	}
	return rec.Code, env
}

func TestRespondLookupErrorMiss(t *testing.T) {
	code, env := lookupErrorResponse(t, gorm.ErrRecordNotFound)
	if code != http.StatusNotFound {
		t.Fatalf("miss status = %d, want 404", code)
	}
	if env["status"] != float64(http.StatusNotFound) || env["message"] != "Budget not found" {
		t.Errorf("miss envelope = %v", env)
	}
}

func TestRespondLookupErrorStoreFault(t *testing.T) {
	// A persistence fault is an internal failure, never a 404; the budget
	// upsert relies on this so a failed lookup cannot reach its create
	// branch and duplicate a (user, category) row.
	code, env := lookupErrorResponse(t, errors.New("driver: bad connection"))
	if code != http.StatusInternalServerError {
		t.Fatalf("store fault status = %d, want 500", code)
	}
	if env["status"] != float64(http.StatusInternalServerError) {
		t.Errorf("fault envelope = %v", env)
	}
	if env["error"] != "driver: bad connection" {
		t.Errorf("fault detail = %v", env["error"])
	}
}
