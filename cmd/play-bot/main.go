package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"pixel-casino/internal/config"
)

type profile struct {
	DisplayName string `json:"display_name"`
	Balance     int64  `json:"balance"`
}

type roundResult struct {
	Game    string   `json:"game"`
	Stake   int64    `json:"stake"`
	Symbols []string `json:"symbols"`
	Won     bool     `json:"won"`
	Payout  int64    `json:"payout"`
	Balance int64    `json:"balance"`
}

type client struct {
	base string
	key  string
	http *http.Client
}

func (c *client) post(path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s: %d %s", path, resp.StatusCode, apiErr.Error)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func main() {
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.MaxBet < 1 {
		cfg.MaxBet = 1
	}
	c := &client{base: cfg.BaseURL, key: cfg.PlayerKey, http: &http.Client{Timeout: 10 * time.Second}}

	var joined struct {
		profile
		Created bool `json:"created"`
	}
	join := map[string]any{
		"display_name": cfg.DisplayName,
		"accept_terms": true,
		"consent":      false,
	}
	if err := c.post("/api/join", join, &joined); err != nil {
		log.Fatal(err)
	}
	log.Printf("joined as %s, balance %d", joined.DisplayName, joined.Balance)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < cfg.Rounds; i++ {
		var result roundResult
		var err error
		switch rnd.Intn(3) {
		case 0:
			err = c.post("/api/games/jackpot", map[string]any{"bet": 1 + rnd.Int63n(cfg.MaxBet)}, &result)
		case 1:
			err = c.post("/api/games/card", map[string]any{"bet": 1 + rnd.Int63n(cfg.MaxBet)}, &result)
		default:
			err = c.post("/api/games/memory/match", map[string]any{}, &result)
		}
		if err != nil {
			log.Printf("round %d: %v", i+1, err)
			continue
		}
		log.Printf("round %d: %s stake=%d won=%v payout=%d balance=%d",
			i+1, result.Game, result.Stake, result.Won, result.Payout, result.Balance)
		time.Sleep(200 * time.Millisecond)
	}
}
