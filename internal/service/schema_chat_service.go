package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"ai-schemadesign-be/internal/constant"
	"ai-schemadesign-be/internal/dto"
	"ai-schemadesign-be/internal/entity"
	"ai-schemadesign-be/internal/pkg/logger"
	"ai-schemadesign-be/internal/repository/memory"
	"ai-schemadesign-be/internal/repository/specification"
	"ai-schemadesign-be/internal/repository/unitofwork"
	"ai-schemadesign-be/pkg/embedding"
	"ai-schemadesign-be/pkg/events"
	"ai-schemadesign-be/pkg/llm"
	"ai-schemadesign-be/pkg/llm/factory"
	pktNats "ai-schemadesign-be/pkg/nats"
	"ai-schemadesign-be/pkg/schema/codegen"
	"ai-schemadesign-be/pkg/schema/diff"
	"ai-schemadesign-be/pkg/schema/history"
	"ai-schemadesign-be/pkg/schema/intent"
	"ai-schemadesign-be/pkg/schema/synth"
	"ai-schemadesign-be/pkg/store"
)

type ISchemaChatService interface {
	// SendMessage runs one full design turn. Model and credential failures
	// are reported in-band as an assistant message so the conversation can
	// continue; only infrastructure problems surface as errors.
	SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	// LoadThread resets the session for the given chat and rebuilds it, from
	// scratch for "new" or from the stored thread otherwise.
	LoadThread(ctx context.Context, chatIdRaw string) (*dto.ThreadViewResponse, error)
	GetAllThreads(ctx context.Context) ([]*dto.ThreadSummaryResponse, error)
	DeleteThread(ctx context.Context, chatId uuid.UUID) error
	SearchThreads(ctx context.Context, query string, limit int) ([]*dto.SearchThreadsResponse, error)
}

type schemaChatService struct {
	uowFactory        unitofwork.RepositoryFactory
	sessions          *memory.SessionRepository
	credentialService ICredentialService
	providerFactory   factory.ProviderFactory
	validator         *intent.Validator
	synthesizer       *synth.Synthesizer
	differ            *diff.Differ
	generator         *codegen.Generator
	dialects          []string
	publisherService  IPublisherService
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewSchemaChatService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	credentialService ICredentialService,
	providerFactory factory.ProviderFactory,
	validator *intent.Validator,
	synthesizer *synth.Synthesizer,
	differ *diff.Differ,
	generator *codegen.Generator,
	dialects []string,
	publisherService IPublisherService,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISchemaChatService {
	if len(dialects) == 0 {
		dialects = []string{store.DefaultDialect}
	}
	return &schemaChatService{
		uowFactory:        uowFactory,
		sessions:          sessions,
		credentialService: credentialService,
		providerFactory:   providerFactory,
		validator:         validator,
		synthesizer:       synthesizer,
		differ:            differ,
		generator:         generator,
		dialects:          dialects,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

func newMessage(role, text, diagram string) entity.ConversationMessage {
	return entity.ConversationMessage{
		Id:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Diagram:   diagram,
		Timestamp: time.Now().UnixMilli(),
	}
}

func (s *schemaChatService) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	ref, err := store.ResolveChatRef(req.ChatId)
	if err != nil {
		return nil, constant.ErrThreadNotFound
	}
	for _, dialect := range s.dialects {
		if !store.IsSupportedDialect(dialect) {
			return nil, constant.ErrUnsupportedDialect
		}
	}

	sessionKey := req.ChatId
	session, err := s.sessions.TryBeginTurn(sessionKey)
	if err != nil {
		return nil, err
	}
	defer func() { s.sessions.EndTurn(sessionKey) }()

	// The history the model sees stops before this turn's utterance; the
	// utterance itself travels separately at the end of the prompt.
	normalized := history.Normalize(session.History)

	session.Append(newMessage(constant.ChatMessageRoleUser, req.Text, ""))

	apiKey, err := s.credentialService.GetApiKey(ctx)
	if err != nil {
		s.logger.Warn("SchemaChatService", "API key unavailable", map[string]interface{}{"error": err.Error()})
		return s.failTurn(session, constant.ErrMsgCredentialMissing), nil
	}
	provider := s.providerFactory.NewProvider(apiKey)

	verdict, err := s.validator.Validate(ctx, provider, req.Text)
	if err != nil {
		s.logger.Error("SchemaChatService", "Intent validation call failed", map[string]interface{}{"error": err.Error()})
		return s.failTurn(session, constant.ErrMsgModelTransport), nil
	}
	if !verdict.IsValid {
		// Out of scope. The rejection becomes the assistant turn and nothing
		// is synthesized or persisted.
		reply := newMessage(constant.ChatMessageRoleModel, verdict.Message, "")
		session.Append(reply)
		s.sessions.Save(session)
		return s.buildSendResponse(nil, session, &reply), nil
	}

	newDiagram, err := s.synthesizer.Synthesize(ctx, provider, normalized, req.Text)
	if err != nil {
		s.logger.Error("SchemaChatService", "Diagram synthesis failed", map[string]interface{}{"error": err.Error()})
		return s.failTurn(session, constant.ErrMsgModelTransport), nil
	}

	summary, err := s.summarize(ctx, provider, session.Diagram, newDiagram)
	if err != nil {
		s.logger.Error("SchemaChatService", "Diagram diff failed", map[string]interface{}{"error": err.Error()})
		return s.failTurn(session, constant.ErrMsgModelTransport), nil
	}

	scripts := make(map[string]string, len(s.dialects))
	for _, dialect := range s.dialects {
		script, err := s.generator.Generate(ctx, provider, newDiagram, dialect)
		if err != nil {
			s.logger.Error("SchemaChatService", "Script generation failed", map[string]interface{}{"dialect": dialect, "error": err.Error()})
			return s.failTurn(session, constant.ErrMsgModelTransport), nil
		}
		scripts[dialect] = script
	}

	reply := newMessage(constant.ChatMessageRoleModel, summary, newDiagram)
	session.Append(reply)
	session.Diagram = newDiagram
	for dialect, script := range scripts {
		session.Schemas[dialect] = script
	}
	s.sessions.Save(session)

	if err := s.reconcile(ctx, ref, session); err != nil {
		s.logger.Error("SchemaChatService", "Failed to persist thread", map[string]interface{}{"chat_id": ref.Id, "error": err.Error()})
		// The session already carries the new diagram and scripts, so a
		// retried turn redoes the whole call sequence against fresh state.
		return s.failTurn(session, constant.ErrMsgPersistence), nil
	}

	if ref.Unsaved {
		s.sessions.Rekey(sessionKey, ref.Id.String())
		sessionKey = ref.Id.String()
	}

	s.publishIndexRequest(ctx, ref.Id, req.Text)

	chatId := ref.Id
	return s.buildSendResponse(&chatId, session, &reply), nil
}

// summarize picks the assistant-facing change summary. The diff call is only
// spent when there was a previous diagram and the new one differs from it.
func (s *schemaChatService) summarize(ctx context.Context, provider llm.LLMProvider, previous, next string) (string, error) {
	switch {
	case next != "" && previous != "" && previous != next:
		return s.differ.Diff(ctx, provider, previous, next)
	case next != "" && previous == "":
		return constant.SummaryFirstDiagram, nil
	default:
		return constant.SummaryNoChanges, nil
	}
}

// failTurn appends the assistant-facing failure text and returns the turn
// in-band, without a chat id: an id only becomes real once a turn has been
// persisted under it. The caller has already logged the cause.
func (s *schemaChatService) failTurn(session *store.Session, text string) *dto.SendMessageResponse {
	reply := newMessage(constant.ChatMessageRoleModel, text, "")
	session.Append(reply)
	s.sessions.Save(session)
	return s.buildSendResponse(nil, session, &reply)
}

func (s *schemaChatService) buildSendResponse(chatId *uuid.UUID, session *store.Session, reply *entity.ConversationMessage) *dto.SendMessageResponse {
	return &dto.SendMessageResponse{
		ChatId:  chatId,
		Reply:   toMessageDTO(reply),
		Diagram: session.Diagram,
		Schemas: session.Schemas,
		History: toMessageDTOs(session.History),
	}
}

// reconcile makes the stored thread match the session, creating the record
// on the first successful turn of an unsaved conversation. Updates replace
// the whole record, so replaying a turn cannot corrupt the thread.
func (s *schemaChatService) reconcile(ctx context.Context, ref store.ChatRef, session *store.Session) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ThreadRepository().FindOne(ctx, specification.ByChatID{ChatID: ref.Id})
	if err != nil {
		return err
	}

	if existing == nil {
		thread := entity.Thread{
			ChatId:       ref.Id,
			Title:        nil, // the indexer titles it off the request path
			Diagram:      session.Diagram,
			SchemaSql:    session.Schemas[store.DefaultDialect],
			Conversation: session.History,
			CreatedAt:    time.Now(),
		}
		if err := uow.ThreadRepository().Create(ctx, &thread); err != nil {
			return err
		}
		s.publishThreadEvent(ctx, events.TypeThreadCreated, ref.Id, nil)
		return nil
	}

	existing.Diagram = session.Diagram
	existing.SchemaSql = session.Schemas[store.DefaultDialect]
	existing.Conversation = session.History
	if err := uow.ThreadRepository().Update(ctx, existing); err != nil {
		return err
	}
	s.publishThreadEvent(ctx, events.TypeThreadUpdated, ref.Id, existing.Title)
	return nil
}

func (s *schemaChatService) publishIndexRequest(ctx context.Context, chatId uuid.UUID, utterance string) {
	payload, err := json.Marshal(dto.PublishIndexThreadMessage{
		ChatId:    chatId,
		Utterance: utterance,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		// Indexing is best effort; the next turn publishes again.
		s.logger.Warn("SchemaChatService", "Failed to enqueue thread for indexing", map[string]interface{}{"chat_id": chatId, "error": err.Error()})
	}
}

func (s *schemaChatService) publishThreadEvent(ctx context.Context, eventType string, chatId uuid.UUID, title *string) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewThreadEvent(eventType, chatId, title)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("SchemaChatService", "Failed to publish thread event", map[string]interface{}{"type": eventType, "error": err.Error()})
	}
}

func (s *schemaChatService) LoadThread(ctx context.Context, chatIdRaw string) (*dto.ThreadViewResponse, error) {
	if chatIdRaw == store.ChatRefNew {
		session := store.NewSession(store.ChatRefNew)
		welcome := constant.WelcomeMessages[rand.Intn(len(constant.WelcomeMessages))]
		session.Append(newMessage(constant.ChatMessageRoleModel, welcome, ""))
		s.sessions.Save(session)

		return &dto.ThreadViewResponse{
			ChatId:  store.ChatRefNew,
			Diagram: "",
			Schemas: session.Schemas,
			History: toMessageDTOs(session.History),
		}, nil
	}

	chatId, err := uuid.Parse(chatIdRaw)
	if err != nil {
		return nil, constant.ErrThreadNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	thread, err := uow.ThreadRepository().FindOne(ctx, specification.ByChatID{ChatID: chatId})
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, constant.ErrThreadNotFound
	}

	// Rebuild the session from the record, discarding whatever state the
	// previous conversation left behind.
	session := store.NewSession(chatId.String())
	session.History = thread.Conversation
	session.Diagram = thread.Diagram
	session.Schemas[store.DefaultDialect] = thread.SchemaSql
	s.sessions.Save(session)

	return &dto.ThreadViewResponse{
		ChatId:  chatId.String(),
		Title:   thread.Title,
		Diagram: thread.Diagram,
		Schemas: session.Schemas,
		History: toMessageDTOs(session.History),
	}, nil
}

func (s *schemaChatService) GetAllThreads(ctx context.Context) ([]*dto.ThreadSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	threads, err := uow.ThreadRepository().FindAll(ctx, specification.OrderBy{Field: "updated_at", Desc: true})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ThreadSummaryResponse, 0, len(threads))
	for _, t := range threads {
		res = append(res, &dto.ThreadSummaryResponse{
			ChatId:    t.ChatId,
			Title:     t.Title,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		})
	}
	return res, nil
}

func (s *schemaChatService) DeleteThread(ctx context.Context, chatId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	thread, err := uow.ThreadRepository().FindOne(ctx, specification.ByChatID{ChatID: chatId})
	if err != nil {
		return err
	}
	if thread == nil {
		return constant.ErrThreadNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ThreadEmbeddingRepository().DeleteByChatId(ctx, chatId); err != nil {
		return err
	}
	if err := uow.ThreadRepository().Delete(ctx, chatId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.sessions.Delete(chatId.String())
	s.publishThreadEvent(ctx, events.TypeThreadDeleted, chatId, thread.Title)
	return nil
}

func (s *schemaChatService) SearchThreads(ctx context.Context, query string, limit int) ([]*dto.SearchThreadsResponse, error) {
	if limit <= 0 {
		limit = 10
	}

	embedded, err := s.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	results, err := uow.ThreadEmbeddingRepository().SearchSimilar(ctx, embedded.Embedding.Values, limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SearchThreadsResponse, 0, len(results))
	for _, r := range results {
		res = append(res, &dto.SearchThreadsResponse{
			ChatId:     r.ChatId,
			Title:      r.Title,
			Similarity: r.Similarity,
		})
	}
	return res, nil
}

func toMessageDTO(m *entity.ConversationMessage) *dto.ConversationMessageDTO {
	if m == nil {
		return nil
	}
	return &dto.ConversationMessageDTO{
		Id:        m.Id,
		Role:      m.Role,
		Message:   m.Text,
		Diagram:   m.Diagram,
		Timestamp: m.Timestamp,
	}
}

func toMessageDTOs(messages []entity.ConversationMessage) []dto.ConversationMessageDTO {
	res := make([]dto.ConversationMessageDTO, 0, len(messages))
	for i := range messages {
		res = append(res, *toMessageDTO(&messages[i]))
	}
	return res
}
