// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vechain/restake/api/utils"
	"github.com/vechain/restake/log"
	"github.com/vechain/restake/program"
	"github.com/vechain/restake/restake"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	pingPeriod = 20 * time.Second
	pongWait   = 30 * time.Second
	writeWait  = 10 * time.Second
	backlog    = 64
)

type Subscriptions struct {
	proc     *program.Processor
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

func New(proc *program.Processor, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		proc: proc,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

// matcher keeps the receipts touching any of the watched accounts, all of
// them when none are watched.
type matcher map[restake.Pubkey]struct{}

func (m matcher) match(r *program.Receipt) bool {
	if len(m) == 0 {
		return true
	}
	for _, addr := range r.Touched {
		if _, ok := m[addr]; ok {
			return true
		}
	}
	return false
}

func parseMatcher(req *http.Request) (matcher, error) {
	m := make(matcher)
	for _, s := range req.URL.Query()["account"] {
		addr, err := restake.ParsePubkey(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "account"))
		}
		m[addr] = struct{}{}
	}
	return m, nil
}

func (s *Subscriptions) handleSubscribeReceipts(w http.ResponseWriter, req *http.Request) error {
	m, err := parseMatcher(req)
	if err != nil {
		return err
	}
	// subscribed before the handshake completes so no receipt is missed
	ch := make(chan *program.Receipt, backlog)
	sub := s.proc.SubscribeReceipts(ch)
	defer sub.Unsubscribe()

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has already responded
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	s.wg.Add(1)
	defer s.wg.Done()
	defer conn.Close()

	closed := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closed"),
				time.Now().Add(writeWait))
			return nil
		case <-closed:
			return nil
		case err := <-sub.Err():
			if err != nil {
				logger.Debug("subscription failed", "err", err)
			}
			return nil
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		case r := <-ch:
			if !m.match(r) {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(r); err != nil {
				logger.Debug("write failed", "err", err)
				return nil
			}
		}
	}
}

// Close disconnects every subscriber.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/receipts").
		Methods(http.MethodGet).
		Name("WS /subscriptions/receipts").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeReceipts))
}
