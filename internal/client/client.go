package client

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waCompanionReg"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
)

// ErrNotLoggedIn is returned by chat and message operations on an unpaired session
var ErrNotLoggedIn = errors.New("client is not logged in")

// Client wraps a whatsmeow client for a single WhatsApp session and turns
// its events into lifecycle events on the dispatcher.
type Client struct {
	container  *sqlstore.Container
	dispatcher *Dispatcher
	logger     zerolog.Logger

	current atomic.Pointer[whatsmeow.Client]

	// Long-lived context used to re-arm pairing after logout or QR timeout
	lifetime context.Context

	// Serializes connect and logout
	mu sync.Mutex
}

// NewClient creates a client backed by the given device container
func NewClient(container *sqlstore.Container, dispatcher *Dispatcher, logger zerolog.Logger, osName string) *Client {
	store.SetOSInfo(osName, store.GetWAVersion())
	store.DeviceProps.PlatformType = waCompanionReg.DeviceProps_CHROME.Enum()

	return &Client{
		container:  container,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Connect connects the session. An unpaired device starts QR pairing and
// emits QRCodeReady events until the phone scans a code.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lifetime = ctx

	wa := c.current.Load()
	if wa == nil {
		var err error
		wa, err = c.newWhatsmeowClient(ctx)
		if err != nil {
			return err
		}
	}

	if wa.IsConnected() {
		return nil
	}

	if wa.Store.ID == nil {
		qrChan, err := wa.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("failed to create QR channel: %w", err)
		}
		go c.pumpQR(wa, qrChan)
		c.logger.Info().Msg("Device not yet registered, waiting for QR scan")
	} else {
		c.logger.Info().Str("jid", wa.Store.ID.String()).Msg("Device is registered, restoring session")
	}

	if err := wa.Connect(); err != nil {
		c.logger.Error().Err(err).Msg("Error connecting client")
		return fmt.Errorf("failed to connect: %w", err)
	}

	return nil
}

// StartPairing reconnects in the background with the context recorded by Connect.
// It is a no-op once that context is done.
func (c *Client) StartPairing() {
	c.mu.Lock()
	ctx := c.lifetime
	c.mu.Unlock()

	if ctx == nil || ctx.Err() != nil {
		return
	}

	go func() {
		if err := c.Connect(ctx); err != nil {
			c.logger.Error().Err(err).Msg("Failed to restart pairing")
		}
	}()
}

// IsConnected returns whether the websocket is connected and the device is logged in
func (c *Client) IsConnected() bool {
	wa := c.current.Load()
	return wa != nil && wa.IsConnected() && wa.IsLoggedIn()
}

// ListChats returns joined groups in server order followed by known contacts
func (c *Client) ListChats(ctx context.Context) ([]Chat, error) {
	wa, err := c.loggedIn()
	if err != nil {
		return nil, err
	}

	groups, err := wa.GetJoinedGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups: %w", err)
	}

	chats := make([]Chat, 0, len(groups))
	for _, g := range groups {
		chats = append(chats, Chat{ID: g.JID.String(), Name: g.Name, IsGroup: true})
	}

	contacts, err := wa.Store.Contacts.GetAllContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}

	return append(chats, contactChats(contacts)...), nil
}

// contactChats converts the contact store into chats sorted by JID
func contactChats(contacts map[types.JID]types.ContactInfo) []Chat {
	chats := make([]Chat, 0, len(contacts))
	for jid, info := range contacts {
		if jid.Server == types.GroupServer {
			continue
		}
		chats = append(chats, Chat{ID: jid.String(), Name: contactName(jid, info)})
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i].ID < chats[j].ID })
	return chats
}

func contactName(jid types.JID, info types.ContactInfo) string {
	for _, name := range []string{info.FullName, info.FirstName, info.PushName, info.BusinessName} {
		if name != "" {
			return name
		}
	}
	return jid.User
}

// SendMessage sends text, or media captioned with text, to chatID and returns the message ID
func (c *Client) SendMessage(ctx context.Context, chatID, text string, media *Media) (string, error) {
	wa, err := c.loggedIn()
	if err != nil {
		return "", err
	}

	recipient, err := types.ParseJID(chatID)
	if err != nil {
		return "", fmt.Errorf("invalid chat id %q: %w", chatID, err)
	}

	msg := &waE2E.Message{Conversation: proto.String(text)}
	if media != nil {
		upload := func(ctx context.Context, data []byte, mediaType whatsmeow.MediaType) (whatsmeow.UploadResponse, error) {
			return wa.Upload(ctx, data, mediaType)
		}
		msg, err = buildMediaMessage(ctx, upload, text, media, c.videoThumbnail)
		if err != nil {
			return "", err
		}
	}

	resp, err := wa.SendMessage(ctx, recipient, msg)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	c.logger.Info().Str("chat", recipient.String()).Str("id", resp.ID).Bool("media", media != nil).Msg("Message sent")
	return resp.ID, nil
}

// Logout unlinks the device. The next Connect pairs a fresh device.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	wa := c.current.Load()
	if wa == nil {
		return ErrNotLoggedIn
	}

	if err := wa.Logout(ctx); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}

	c.current.Store(nil)
	c.logger.Info().Msg("Session logged out")
	return nil
}

// Close disconnects without logging out so the session can be restored later
func (c *Client) Close() {
	if wa := c.current.Load(); wa != nil {
		wa.Disconnect()
	}
}

func (c *Client) loggedIn() (*whatsmeow.Client, error) {
	wa := c.current.Load()
	if wa == nil || !wa.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return wa, nil
}

// newWhatsmeowClient loads the first stored device (or a new one) and installs the event handler
func (c *Client) newWhatsmeowClient(ctx context.Context) (*whatsmeow.Client, error) {
	device, err := c.container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("device error: %w", err)
	}

	wa := whatsmeow.NewClient(device, waLog.Zerolog(c.logger.With().Str("module", "WhatsApp").Logger()))
	wa.AddEventHandler(func(evt any) {
		c.handleWhatsmeowEvent(wa, evt)
	})

	c.current.Store(wa)
	return wa, nil
}

// handleWhatsmeowEvent handles events from the whatsmeow client
func (c *Client) handleWhatsmeowEvent(wa *whatsmeow.Client, evt any) {
	if c.current.Load() != wa {
		return
	}

	switch e := evt.(type) {
	case *events.PairSuccess:
		c.logger.Info().Str("jid", e.ID.String()).Str("platform", e.Platform).Msg("Device paired")
	case *events.StreamError:
		c.logger.Warn().Str("code", e.Code).Msg("Stream error")
	}

	event := translateEvent(evt)
	if event == nil {
		return
	}
	c.dispatcher.Dispatch(event)

	if _, ok := evt.(*events.LoggedOut); ok {
		// whatsmeow deletes the device on remote logout
		c.current.CompareAndSwap(wa, nil)
		c.StartPairing()
	}
}

// translateEvent maps whatsmeow events onto lifecycle events. Irrelevant events map to nil.
func translateEvent(evt any) Event {
	switch e := evt.(type) {
	case *events.Connected:
		return NewSessionReadyEvent()
	case *events.LoggedOut:
		return NewDisconnectedEvent("logged out: " + e.Reason.String())
	case *events.Disconnected:
		return NewDisconnectedEvent("connection lost")
	case *events.StreamReplaced:
		return NewDisconnectedEvent("stream replaced")
	case *events.ConnectFailure:
		return NewAuthFailedEvent("connect failure: " + e.Reason.String())
	case *events.ClientOutdated:
		return NewAuthFailedEvent("client outdated")
	case *events.TemporaryBan:
		return NewAuthFailedEvent("temporary ban: " + e.String())
	case *events.PairError:
		return NewAuthFailedEvent("pair error: " + e.Error.Error())
	}
	return nil
}

// pumpQR forwards QR channel items until the channel closes
func (c *Client) pumpQR(wa *whatsmeow.Client, qrChan <-chan whatsmeow.QRChannelItem) {
	for item := range qrChan {
		if c.current.Load() != wa {
			return
		}

		event, rearm := translateQRItem(item)
		if event == nil {
			c.logger.Info().Str("event", item.Event).Msg("QR pairing finished")
			continue
		}

		if item.Event == whatsmeow.QRChannelEventCode {
			c.logger.Info().Msg("New QR code generated")
		} else {
			c.logger.Warn().Str("event", item.Event).Msg("QR pairing stopped")
		}
		c.dispatcher.Dispatch(event)

		if rearm {
			wa.Disconnect()
			c.StartPairing()
		}
	}
}

// translateQRItem maps a QR channel item to a lifecycle event and reports
// whether pairing should be restarted afterwards.
func translateQRItem(item whatsmeow.QRChannelItem) (Event, bool) {
	switch item.Event {
	case whatsmeow.QRChannelEventCode:
		return NewQRCodeReadyEvent(item.Code, item.Timeout), false
	case whatsmeow.QRChannelSuccess.Event:
		return nil, false
	case whatsmeow.QRChannelTimeout.Event:
		return NewDisconnectedEvent("qr timeout"), true
	case whatsmeow.QRChannelEventError:
		reason := "pairing error"
		if item.Error != nil {
			reason = "pairing error: " + item.Error.Error()
		}
		return NewAuthFailedEvent(reason), false
	default:
		return NewAuthFailedEvent(item.Event), false
	}
}
