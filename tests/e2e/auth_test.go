package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:8080/api"

func requireServer(t *testing.T) {
	conn, err := net.DialTimeout("tcp", "localhost:8080", time.Second)
	if err != nil {
		t.Skip("server is not running on localhost:8080")
	}
	conn.Close()
}

type tokenBody struct {
	SignedToken string `json:"token"`
	User        struct {
		ID   uint   `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

func postJSON(t *testing.T, path, token string, payload interface{}, targetStatus int) []byte {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewBuffer(body))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	client := http.Client{
		Timeout: 30 * time.Second,
	}

	res, err := client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, targetStatus, res.StatusCode)
	return raw
}

func putJSON(t *testing.T, path, token string, payload interface{}, targetStatus int) []byte {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, baseURL+path, bytes.NewBuffer(body))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	client := http.Client{
		Timeout: 30 * time.Second,
	}

	res, err := client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, targetStatus, res.StatusCode)
	return raw
}

func registerUser(t *testing.T, name, role string) (tokenBody, string) {
	email := name + strconv.Itoa(rand.Int()) + "@example.com"
	raw := postJSON(t, "/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password",
		"role":     role,
	}, http.StatusOK)

	var body tokenBody
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotEqual(t, "", body.SignedToken)
	return body, email
}

func TestRegisterAndLogin(t *testing.T) {
	requireServer(t)

	_, email := registerUser(t, "customer", "customer")

	raw := postJSON(t, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "password",
	}, http.StatusOK)

	var body tokenBody
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "customer", body.User.Role)
}

func TestDuplicateEmailConflict(t *testing.T) {
	requireServer(t)

	_, email := registerUser(t, "dup", "customer")

	postJSON(t, "/auth/register", "", map[string]string{
		"name":     "dup",
		"email":    email,
		"password": "password",
	}, http.StatusConflict)
}

func TestLoginWrongPassword(t *testing.T) {
	requireServer(t)

	_, email := registerUser(t, "wrongpass", "customer")

	postJSON(t, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "not the password",
	}, http.StatusUnauthorized)
}
