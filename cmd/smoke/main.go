package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// Exercises the full CRUD surface against a running server.
// Expects the API on 127.0.0.1, port taken from APP_PORT.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://127.0.0.1:%s", port)

	client := &http.Client{Timeout: 5 * time.Second}

	request := func(method, path string, body any) (int, map[string]any) {
		var reader io.Reader
		if body != nil {
			b, err := json.Marshal(body)
			if err != nil {
				log.Fatalf("marshal %s %s: %v", method, path, err)
			}
			reader = bytes.NewReader(b)
		}
		req, err := http.NewRequest(method, base+path, reader)
		if err != nil {
			log.Fatalf("build %s %s: %v", method, path, err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := client.Do(req)
		if err != nil {
			log.Fatalf("%s %s: %v", method, path, err)
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Fatalf("read %s %s: %v", method, path, err)
		}
		var obj map[string]any
		if len(data) > 0 {
			_ = json.Unmarshal(data, &obj)
		}
		return resp.StatusCode, obj
	}

	expect := func(got, want int, step string) {
		if got != want {
			log.Fatalf("%s: got status %d, want %d", step, got, want)
		}
		log.Printf("%s: %d", step, got)
	}

	code, body := request(http.MethodGet, "/health", nil)
	expect(code, http.StatusOK, "health")
	if body["status"] != "healthy" {
		log.Fatalf("health: unexpected body %v", body)
	}

	due := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)
	code, body = request(http.MethodPost, "/tasks", map[string]any{
		"title":    "smoke test task",
		"priority": "high",
		"due_date": due,
	})
	expect(code, http.StatusCreated, "create task")
	idVal, ok := body["id"].(float64)
	if !ok {
		log.Fatalf("create task: no id in response %v", body)
	}
	taskPath := fmt.Sprintf("/tasks/%d", int64(idVal))

	code, body = request(http.MethodGet, taskPath, nil)
	expect(code, http.StatusOK, "get task")
	if body["updated_at"] != nil {
		log.Fatalf("get task: expected null updated_at, got %v", body["updated_at"])
	}

	code, body = request(http.MethodPut, taskPath, map[string]any{"status": "completed"})
	expect(code, http.StatusOK, "update task")
	if body["status"] != "completed" {
		log.Fatalf("update task: status not applied, got %v", body["status"])
	}
	if body["updated_at"] == nil {
		log.Fatal("update task: updated_at was not stamped")
	}

	code, _ = request(http.MethodGet, "/tasks/status/completed", nil)
	expect(code, http.StatusOK, "filter by status")

	code, _ = request(http.MethodGet, "/tasks/priority/high", nil)
	expect(code, http.StatusOK, "filter by priority")

	code, _ = request(http.MethodGet, "/tasks?limit=5", nil)
	expect(code, http.StatusOK, "list tasks")

	code, body = request(http.MethodDelete, taskPath, nil)
	expect(code, http.StatusOK, "delete task")
	if body["ok"] != true {
		log.Fatalf("delete task: unexpected body %v", body)
	}

	code, _ = request(http.MethodGet, taskPath, nil)
	expect(code, http.StatusNotFound, "get deleted task")

	log.Println("smoke test finished")
}
