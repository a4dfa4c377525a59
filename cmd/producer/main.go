package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"codgate/internal/generator"
)

// Producer posts generated storefront submissions to the intake endpoint.
// Used for demos and for hammering the sequencer with concurrent orders.
type Producer struct {
	client  *http.Client
	baseURL string
	shopID  string
}

// NewProducer creates a load producer against the given service URL.
func NewProducer(baseURL, shopID string) *Producer {
	return &Producer{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		shopID:  shopID,
	}
}

// submit posts one random submission and logs the assigned order name.
func (p *Producer) submit(ctx context.Context) error {
	sub := generator.NewSubmission(p.shopID)
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/apps/cod/order", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var ack struct {
		OrderName string `json:"order_name"`
		Error     string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("submission rejected (%d): %s", resp.StatusCode, ack.Error)
	}

	log.Printf("order created: %s", ack.OrderName)
	return nil
}

// burst fires n submissions concurrently; useful for verifying that the
// sequencer hands out distinct names under contention.
func (p *Producer) burst(ctx context.Context, n int) {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.submit(ctx); err != nil {
				log.Printf("burst submission failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

// Run submits at the given interval until the context is cancelled.
func (p *Producer) Run(ctx context.Context, interval time.Duration) {
	log.Println("Producer started. Press CTRL+C to stop.")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Producer stopping.")
			return
		case <-ticker.C:
			if err := p.submit(ctx); err != nil {
				log.Printf("submission failed: %v", err)
			}
		}
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8081", "service base URL")
	shopID := flag.String("shop", "demo-shop.example.com", "shop identifier")
	interval := flag.Duration("interval", 2*time.Second, "delay between submissions")
	burstSize := flag.Int("burst", 0, "fire N concurrent submissions and exit")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	producer := NewProducer(*baseURL, *shopID)

	if *burstSize > 0 {
		producer.burst(ctx, *burstSize)
		return
	}

	go producer.Run(ctx, *interval)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown
	cancel()
}
