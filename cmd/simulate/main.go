package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Simplified DTOs for the script
type SetupRequest struct {
	JdText         string `json:"jd_text"`
	ResumeText     string `json:"resume_text"`
	JobTitle       string `json:"job_title"`
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
}

type SetupResponse struct {
	Data struct {
		InterviewId     string          `json:"interview_id"`
		RoleFitAnalysis json.RawMessage `json:"role_fit_analysis"`
	} `json:"data"`
}

type StatusResponse struct {
	Data struct {
		Status string `json:"status"`
	} `json:"data"`
}

func main() {
	title := color.New(color.FgCyan, color.Bold)
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	title.Println("=== Interview Lifecycle Simulation ===")

	setup := SetupRequest{
		JobTitle:       "Backend Engineer",
		JdText:         "Design and operate Go services backed by Postgres.",
		CandidateName:  "Test Candidate",
		CandidateEmail: "candidate@example.com",
		ResumeText:     "Four years building HTTP APIs in Go and Python.",
	}

	var setupRes SetupResponse
	if err := post("/interview/setup", setup, &setupRes); err != nil {
		log.Fatalf("Setup failed: %v", err)
	}
	interviewID := setupRes.Data.InterviewId
	ok.Printf("Interview created: %s\n", interviewID)
	fmt.Printf("Role fit: %s\n", string(setupRes.Data.RoleFitAnalysis))

	var status StatusResponse
	if err := post("/interview/"+interviewID+"/start", nil, &status); err != nil {
		log.Fatalf("Start failed: %v", err)
	}
	ok.Printf("Started, status=%s\n", status.Data.Status)

	flag := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"flag_type": "gaze_away",
	}
	if err := post("/interview/"+interviewID+"/integrity-flag", flag, nil); err != nil {
		warn.Printf("Flag failed: %v\n", err)
	} else {
		ok.Println("Integrity flag recorded")
	}

	if err := post("/interview/"+interviewID+"/end", nil, &status); err != nil {
		log.Fatalf("End failed: %v", err)
	}
	ok.Printf("Ended, status=%s\n", status.Data.Status)
}

func post(path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, _ := http.NewRequest("POST", baseURL+path, body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API Error %d: %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
