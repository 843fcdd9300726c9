// Seed drives the running API with fake data: two users, a post, an
// engagement round-trip, and a notification read. Useful for local
// smoke runs against docker-compose.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var baseURL = func() string {
	if v := os.Getenv("SEED_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}()

type account struct {
	email    string
	password string
	username string
	token    string
	id       string
	verify   string
}

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	alice := signupAndOnboard()
	bob := signupAndOnboard()

	postID := createPost(alice)
	likePost(bob, postID)
	commentID := commentPost(bob, postID, gofakeit.Sentence(6))
	replyComment(alice, postID, commentID, gofakeit.Sentence(4))
	followUser(bob, alice.id)

	listNotifications(alice)
	markNotificationsRead(alice)

	log.Println("seeding complete")
}

func signupAndOnboard() account {
	a := account{
		email:    gofakeit.Email(),
		password: "123456",
		username: gofakeit.Username(),
	}

	body, _ := json.Marshal(map[string]string{
		"name":     gofakeit.Name(),
		"username": a.username,
		"email":    a.email,
		"password": a.password,
	})
	var out struct {
		Token             string `json:"token"`
		VerificationToken string `json:"verificationToken"`
		User              struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	postJSON("/api/v1/signup", "", body, &out)
	a.token = out.Token
	a.id = out.User.ID
	a.verify = out.VerificationToken

	onboard(a)

	var tok struct {
		Token string `json:"token"`
	}
	postJSON("/api/v1/signin", "", mustJSON(map[string]string{
		"email": a.email, "password": a.password,
	}), &tok)
	a.token = tok.Token
	return a
}

func onboard(a account) {
	body := mustJSON(map[string]any{
		"bio":       gofakeit.Sentence(8),
		"techStack": []string{"go", "mongodb"},
		"social":    map[string]string{"github": "https://github.com/" + a.username},
	})
	postJSON("/api/v1/onboarding/"+a.verify, "", body, nil)
}

func createPost(a account) string {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", gofakeit.Sentence(3))
	_ = mw.WriteField("description", gofakeit.Paragraph(1, 2, 8, " "))
	fw, _ := mw.CreateFormFile("images", "seed.png")
	_, _ = fw.Write(gofakeit.ImagePng(64, 64))
	_ = mw.Close()

	req, _ := http.NewRequest(http.MethodPost, baseURL+"/api/v1/posts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+a.token)

	var out struct {
		ID string `json:"id"`
	}
	do(req, &out)
	return out.ID
}

func likePost(a account, postID string) {
	req, _ := http.NewRequest(http.MethodPut, baseURL+"/api/v1/like/"+postID, nil)
	req.Header.Set("Authorization", "Bearer "+a.token)
	do(req, nil)
}

func commentPost(a account, postID, text string) string {
	var out struct {
		ID string `json:"id"`
	}
	postJSON("/api/v1/comments/"+postID, a.token, mustJSON(map[string]string{"text": text}), &out)
	return out.ID
}

func replyComment(a account, postID, commentID, text string) {
	postJSON("/api/v1/comments/"+postID+"/"+commentID, a.token, mustJSON(map[string]string{"text": text}), nil)
}

func followUser(a account, targetID string) {
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/api/v1/follow/"+targetID, nil)
	req.Header.Set("Authorization", "Bearer "+a.token)
	do(req, nil)
}

func listNotifications(a account) {
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/api/v1/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+a.token)
	var out []map[string]any
	do(req, &out)
	log.Printf("%s has %d notifications", a.username, len(out))
}

func markNotificationsRead(a account) {
	postJSON("/api/v1/notifications", a.token, nil, nil)
}

func postJSON(path, token string, body []byte, out any) {
	req, _ := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	do(req, out)
}

func do(req *http.Request, out any) {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		log.Printf("%s %s -> %d: %s", req.Method, req.URL.Path, resp.StatusCode, string(raw))
		return
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			log.Printf("decode %s: %v", req.URL.Path, err)
		}
	}
	fmt.Printf("%s %s -> %d\n", req.Method, req.URL.Path, resp.StatusCode)
}

func mustJSON(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
