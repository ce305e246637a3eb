package whatsapp

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
)

// Message is one inbound text event, reduced to what the handler needs.
type Message struct {
	ID     string
	Chat   string
	Sender string
	Body   string
	FromMe bool
}

// Handler receives every inbound text message.
type Handler func(ctx context.Context, m Message)

// Client wraps the WhatsApp connection. Session state lives in a local
// SQLite file, so the QR pairing is only needed on the first run.
type Client struct {
	wa      *whatsmeow.Client
	handler Handler
}

// NewClient opens (or creates) the session store and builds the
// underlying WhatsApp client. Connect must be called separately.
func NewClient(sessionDBPath string, handler Handler) (*Client, error) {
	container, err := sqlstore.New("sqlite3",
		fmt.Sprintf("file:%s?_foreign_keys=on", sessionDBPath),
		waLog.Stdout("Database", "WARN", false))
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	device, err := container.GetFirstDevice()
	if err != nil {
		return nil, fmt.Errorf("load device: %w", err)
	}

	c := &Client{
		wa:      whatsmeow.NewClient(device, waLog.Stdout("Client", "WARN", false)),
		handler: handler,
	}
	c.wa.AddEventHandler(c.onEvent)
	return c, nil
}

// Connect establishes the WhatsApp session. On the first run a QR code
// is printed to the terminal for pairing; afterwards the stored session
// is reused.
func (c *Client) Connect(ctx context.Context) error {
	if c.wa.Store.ID == nil {
		qrChan, err := c.wa.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("get qr channel: %w", err)
		}
		if err := c.wa.Connect(); err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		for evt := range qrChan {
			switch evt.Event {
			case "code":
				log.Printf("📱 Scan this QR code with WhatsApp:")
				qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
			case "success":
				log.Printf("✅ WhatsApp paired")
			default:
				log.Printf("⚠️ QR login event: %s", evt.Event)
			}
		}
		return nil
	}

	if err := c.wa.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	log.Printf("✅ WhatsApp connected")
	return nil
}

// Disconnect closes the WhatsApp session.
func (c *Client) Disconnect() {
	c.wa.Disconnect()
	log.Printf("👋 WhatsApp disconnected")
}

// SendText delivers a plain text message to the given chat JID.
func (c *Client) SendText(ctx context.Context, chat, text string) error {
	jid, err := types.ParseJID(chat)
	if err != nil {
		return fmt.Errorf("parse chat jid %q: %w", chat, err)
	}
	_, err = c.wa.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: proto.String(text),
	})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (c *Client) onEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Message:
		body := extractText(v)
		if body == "" {
			return
		}
		c.handler(context.Background(), Message{
			ID:     string(v.Info.ID),
			Chat:   v.Info.Chat.String(),
			Sender: v.Info.Sender.String(),
			Body:   body,
			FromMe: v.Info.IsFromMe,
		})
	case *events.Connected:
		log.Printf("🤖 WhatsApp session ready")
	case *events.LoggedOut:
		log.Printf("❌ WhatsApp logged out, delete the session file and re-pair")
	}
}

// extractText pulls the plain text out of the two message shapes
// WhatsApp uses for text (short and extended/quoted).
func extractText(evt *events.Message) string {
	if t := evt.Message.GetConversation(); t != "" {
		return t
	}
	return evt.Message.GetExtendedTextMessage().GetText()
}

// UserJID converts a bare phone number to the chat JID WhatsApp uses
// for direct messages.
func UserJID(number string) string {
	number = strings.TrimPrefix(strings.TrimSpace(number), "+")
	return number + "@" + types.DefaultUserServer
}
