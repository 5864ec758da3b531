package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"ai-schemadesign-be/internal/constant"
	"ai-schemadesign-be/internal/dto"
	"ai-schemadesign-be/internal/entity"
	"ai-schemadesign-be/internal/repository/specification"
	"ai-schemadesign-be/internal/repository/unitofwork"
	"ai-schemadesign-be/pkg/embedding"
	"ai-schemadesign-be/pkg/llm/factory"
)

type IThreadIndexerService interface {
	Consume(ctx context.Context) error
}

// threadIndexerService runs off the request path. After each successful turn
// it titles untitled threads and refreshes the thread's search embedding.
type threadIndexerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	providerFactory   factory.ProviderFactory
	credentialService ICredentialService
}

func NewThreadIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	providerFactory factory.ProviderFactory,
	credentialService ICredentialService,
) IThreadIndexerService {
	return &threadIndexerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		providerFactory:   providerFactory,
		credentialService: credentialService,
	}
}

func (s *threadIndexerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *threadIndexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexThreadMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal index message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Indexing thread %s", payload.ChatId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	thread, err := uow.ThreadRepository().FindOne(ctx, specification.ByChatID{ChatID: payload.ChatId})
	if err != nil {
		log.Printf("[ERROR] Failed to load thread %s: %v", payload.ChatId, err)
		msg.Nack()
		return
	}
	if thread == nil {
		// Deleted between publish and consume. Nothing to index.
		msg.Ack()
		return
	}

	if thread.Title == nil {
		title, err := s.generateTitle(ctx, payload.Utterance)
		if err != nil {
			log.Printf("[WARN] Title generation for %s failed, thread stays untitled: %v", payload.ChatId, err)
		} else {
			thread.Title = &title
			if err := uow.ThreadRepository().Update(ctx, thread); err != nil {
				log.Printf("[ERROR] Failed to store title for %s: %v", payload.ChatId, err)
				msg.Nack()
				return
			}
		}
	}

	document := buildIndexDocument(thread, payload.Utterance)
	res, err := s.embeddingProvider.Generate(ctx, document, embedding.TaskRetrievalDocument)
	if err != nil {
		log.Printf("[ERROR] Failed to embed thread %s: %v", payload.ChatId, err)
		msg.Nack()
		return
	}

	err = uow.ThreadEmbeddingRepository().Upsert(ctx, &entity.ThreadEmbedding{
		Id:             uuid.New(),
		ChatId:         thread.ChatId,
		Document:       document,
		EmbeddingValue: res.Embedding.Values,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		log.Printf("[ERROR] Failed to store embedding for %s: %v", payload.ChatId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Thread indexed: %s", payload.ChatId)
	msg.Ack()
}

func (s *threadIndexerService) generateTitle(ctx context.Context, utterance string) (string, error) {
	apiKey, err := s.credentialService.GetApiKey(ctx)
	if err != nil {
		return "", err
	}
	provider := s.providerFactory.NewProvider(apiKey)

	title, err := provider.Generate(ctx, fmt.Sprintf(constant.GenerateTitlePromptV1, utterance))
	if err != nil {
		return "", err
	}
	title = strings.TrimSpace(strings.Trim(strings.TrimSpace(title), `"`))
	if title == "" {
		return "", fmt.Errorf("model returned an empty title")
	}
	return title, nil
}

// buildIndexDocument flattens the searchable parts of a thread into one
// retrieval document.
func buildIndexDocument(thread *entity.Thread, utterance string) string {
	var b strings.Builder
	if thread.Title != nil {
		b.WriteString("Title: ")
		b.WriteString(*thread.Title)
		b.WriteString("\n")
	}
	if utterance != "" {
		b.WriteString("Request: ")
		b.WriteString(utterance)
		b.WriteString("\n")
	}
	if thread.Diagram != "" {
		b.WriteString("Diagram: ")
		b.WriteString(thread.Diagram)
	}
	return b.String()
}
