package convo

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"votebot/entity"
	"votebot/internal/lib/sl"
)

const (
	retrySuffix = "Please try again!"
	apologyMsg  = "I seem to have had a glitch. Please send your last message again."
)

// Engine drives conversations turn by turn: it validates the incoming
// answer against the current step, applies the resulting field writes,
// resolves the next step and sends its rendered message.
type Engine struct {
	registry      *Registry
	users         UserStore
	conversations ConversationStore
	messages      MessageStore
	listener      MessageListener
	botUserID     string
	log           *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEngine(registry *Registry, users UserStore, conversations ConversationStore, messages MessageStore, botUserID string, log *slog.Logger) *Engine {
	return &Engine{
		registry:      registry,
		users:         users,
		conversations: conversations,
		messages:      messages,
		botUserID:     botUserID,
		log:           log.With(sl.Module("convo.engine")),
		locks:         make(map[string]*sync.Mutex),
	}
}

// SetMessageListener sets the listener notified of stored messages (may be nil).
func (e *Engine) SetMessageListener(l MessageListener) {
	e.listener = l
}

// convoLock serializes turns per conversation. Two messages racing on the
// same stored step would otherwise both advance from it and lose one update.
func (e *Engine) convoLock(conversationID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[conversationID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[conversationID] = lock
	}
	return lock
}

// StartOptions tweak where a started conversation begins.
type StartOptions struct {
	StartStep StepID
}

// Start opens a bot-initiated conversation with a user, positioned at the
// chain's start step (or the override), and dispatches its opening message.
func (e *Engine) Start(ctx context.Context, chainName ChainID, userID string, opts *StartOptions) (*entity.Conversation, error) {
	user, err := e.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, configErrorf("user %s was not found", userID)
	}

	chain, ok := e.registry.Chain(chainName)
	if !ok {
		return nil, configErrorf("chain %s not found", chainName)
	}

	start := chain.Start
	if opts != nil && opts.StartStep != "" {
		start = opts.StartStep
	}

	conversation := entity.NewConversation(e.botUserID, entity.ConversationBot,
		entity.ConversationState{Type: string(chainName)}, []string{userID})

	step, name, err := chain.Resolve(Transition{Next: start}, conversation, user)
	if err != nil {
		return nil, err
	}
	conversation.State.Step = string(name)

	if err := e.conversations.CreateConversation(ctx, conversation); err != nil {
		return nil, err
	}
	if err := e.send(ctx, conversation.UUID, RenderTemplate(step.Msg, user)); err != nil {
		return nil, err
	}

	e.log.Info("started conversation",
		slog.String("chain", string(chainName)),
		slog.String("user_id", userID),
		slog.String("step", string(name)),
	)
	return conversation, nil
}

// Advance processes one incoming message for a conversation. Answer problems
// are reported back to the user; anything else collapses to a generic apology
// without moving the conversation off its current step.
func (e *Engine) Advance(ctx context.Context, userID string, conversation *entity.Conversation, message *entity.Message) {
	lock := e.convoLock(conversation.UUID)
	lock.Lock()
	defer lock.Unlock()

	// nothing past this point may take the process down
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("fatal turn failure (giving up)",
				slog.String("conversation_id", conversation.UUID),
				slog.Any("panic", r),
			)
		}
	}()

	err := e.advance(ctx, userID, conversation, message)
	if err == nil {
		return
	}

	var dataErr *DataError
	if errors.As(err, &dataErr) {
		e.turnError(ctx, conversation, dataErr)
		return
	}

	e.log.Error("turn failed",
		slog.String("conversation_id", conversation.UUID),
		slog.String("step", conversation.State.Step),
		sl.Err(err),
	)
	if sendErr := e.send(ctx, conversation.UUID, apologyMsg); sendErr != nil {
		e.log.Error("fatal turn failure (giving up)",
			slog.String("conversation_id", conversation.UUID),
			sl.Err(sendErr),
		)
	}
}

func (e *Engine) advance(ctx context.Context, userID string, conversation *entity.Conversation, message *entity.Message) error {
	if !conversation.Active {
		e.log.Info("message for closed conversation, ignoring",
			slog.String("conversation_id", conversation.UUID))
		return nil
	}

	user, err := e.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return configErrorf("user %s was not found", userID)
	}

	chain, ok := e.registry.Chain(ChainID(conversation.State.Type))
	if !ok {
		return configErrorf("conversation chain missing: %s", conversation.State.Type)
	}
	step, ok := chain.Step(StepID(conversation.State.Step))
	if !ok {
		return configErrorf("conversation chain missing: %s.%s", conversation.State.Type, conversation.State.Step)
	}

	// the dialogue is over; acknowledge and discard
	if step.Final {
		e.log.Info("received message but conversation finished",
			slog.String("conversation_id", conversation.UUID))
		return nil
	}

	// cancellation never touches the validator
	if IsCancel(message.Body) {
		e.log.Info("user cancelled conversation",
			slog.String("conversation_id", conversation.UUID))
		return e.closeConversation(ctx, conversation)
	}

	t, err := step.Process(ctx, message.Body)
	if err != nil {
		return err
	}

	if err := e.applyAssignments(ctx, user, t.Assignments); err != nil {
		return err
	}

	next, name, err := chain.Resolve(t, conversation, user)
	if err != nil {
		return err
	}

	conversation.State.Step = string(name)
	conversation.Updated = time.Now()

	if err := e.send(ctx, conversation.UUID, RenderTemplate(next.Msg, user)); err != nil {
		return err
	}
	if err := e.conversations.UpdateConversation(ctx, conversation); err != nil {
		return err
	}

	e.log.Debug("advanced conversation",
		slog.String("conversation_id", conversation.UUID),
		slog.String("step", string(name)),
	)
	return nil
}

// Goto jumps a conversation to a named step out of band (used by the receipt
// webhook), resolving and dispatching that step's message.
func (e *Engine) Goto(ctx context.Context, userID string, conversation *entity.Conversation, stepName StepID) error {
	lock := e.convoLock(conversation.UUID)
	lock.Lock()
	defer lock.Unlock()

	user, err := e.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return configErrorf("user %s was not found", userID)
	}

	chain, ok := e.registry.Chain(ChainID(conversation.State.Type))
	if !ok {
		return configErrorf("conversation chain missing: %s", conversation.State.Type)
	}

	step, name, err := chain.Resolve(Transition{Next: stepName}, conversation, user)
	if err != nil {
		return err
	}

	conversation.State.Step = string(name)
	conversation.Updated = time.Now()

	if err := e.send(ctx, conversation.UUID, RenderTemplate(step.Msg, user)); err != nil {
		return err
	}
	return e.conversations.UpdateConversation(ctx, conversation)
}

// applyAssignments resolves each assignment against the registry of writable
// records and persists every record that was touched. Only the user record is
// writable today; assignments naming anything else are dropped.
func (e *Engine) applyAssignments(ctx context.Context, user *entity.User, assignments []Assignment) error {
	touched := false
	for _, a := range assignments {
		switch a.Record {
		case "user":
			ApplyToUser(user, a.Path, a.Value)
			touched = true
		default:
			e.log.Debug("dropping assignment for unwritable record",
				slog.String("record", a.Record),
				slog.String("path", a.Path),
			)
		}
	}
	if !touched {
		return nil
	}
	return e.users.UpdateUser(ctx, user)
}

func (e *Engine) turnError(ctx context.Context, conversation *entity.Conversation, dataErr *DataError) {
	if dataErr.End {
		e.log.Info("conversation ended by terminal answer",
			slog.String("conversation_id", conversation.UUID),
			slog.String("reason", dataErr.Msg),
		)
		if err := e.send(ctx, conversation.UUID, dataErr.Msg+"."); err != nil {
			e.log.Error("sending terminal message", sl.Err(err))
		}
		if err := e.closeConversation(ctx, conversation); err != nil {
			e.log.Error("closing conversation", sl.Err(err))
		}
		return
	}

	reply := retrySuffix
	if dataErr.Msg != "" {
		reply = dataErr.Msg + ". " + retrySuffix
	}
	if err := e.send(ctx, conversation.UUID, reply); err != nil {
		e.log.Error("sending retry message", sl.Err(err))
	}
}

func (e *Engine) closeConversation(ctx context.Context, conversation *entity.Conversation) error {
	conversation.Active = false
	return e.conversations.CloseConversation(ctx, conversation.UUID)
}

func (e *Engine) send(ctx context.Context, conversationID, body string) error {
	stored, err := e.messages.CreateMessage(ctx, entity.NewMessage(e.botUserID, conversationID, body))
	if err != nil {
		return err
	}
	if e.listener != nil {
		e.listener.MessageStored(stored)
	}
	return nil
}
