//go:build ignore
// +build ignore

// Seeds a running backend with sample bank SMS traffic through the ingest
// endpoint. Run the backend with SKIP_AUTH=true (or USE_MEMORY_STORE=true)
// first, then:
//
//	go run scripts/seed-data.go
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

type seedMessage struct {
	Text    string
	Sender  string
	DaysAgo int
}

var seedMessages = []seedMessage{
	{"Rs 500.00 debited from A/c XX1234 at STARBUCKS COFFEE on 05-01-24", "AD-HDFCBK", 40},
	{"Rs. 1,250.50 debited from A/c XX1234 for UPI-ZOMATO-4821 via UPI", "AD-HDFCBK", 32},
	{"INR 199.00 debited from A/c XX1234 at NETFLIX via card", "AD-HDFCBK", 61},
	{"INR 199.00 debited from A/c XX1234 at NETFLIX via card", "AD-HDFCBK", 31},
	{"INR 199.00 debited from A/c XX1234 at NETFLIX via card", "AD-HDFCBK", 1},
	{"Rs 3,400.00 credited to A/c XX5678 by NEFT from ACME PAYROLL", "VK-ICICIB", 15},
	{"Rs 89.00 debited from A/c XX1234 paid to 8007320919@ybl via UPI Ref 402819", "AD-PAYTM", 7},
	{"Rs 2,100.00 spent on card XX9012 at BIGBASKET on 12-02-24", "AX-SBIINB", 12},
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8111"
	}
	userID := os.Getenv("USER_ID")
	if userID == "" {
		userID = "local-dev-user"
	}

	log.Printf("Seeding SMS traffic for user %s via %s", userID, apiURL)

	client := &http.Client{Timeout: 10 * time.Second}
	created := 0
	for _, msg := range seedMessages {
		receivedAt := time.Now().AddDate(0, 0, -msg.DaysAgo)
		body, err := json.Marshal(map[string]any{
			"text":       msg.Text,
			"sender":     msg.Sender,
			"receivedAt": receivedAt,
		})
		if err != nil {
			log.Fatalf("marshal: %v", err)
		}

		req, err := http.NewRequest(http.MethodPost, apiURL+"/v1/sms/ingest", bytes.NewReader(body))
		if err != nil {
			log.Fatalf("build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Debug-Impersonate-User", userID)

		resp, err := client.Do(req)
		if err != nil {
			log.Fatalf("ingest request failed: %v", err)
		}
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 300 {
			log.Printf("  skipped (%d): %s", resp.StatusCode, string(respBody))
			continue
		}
		created++
		fmt.Printf("  ingested %q from %s\n", msg.Text[:40], msg.Sender)
	}

	log.Printf("Done: %d/%d messages ingested", created, len(seedMessages))
	log.Println("Run POST /v1/subscriptions/detect to pick up the Netflix cadence")
}
