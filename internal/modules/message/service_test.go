package message

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"minemarket/internal/domain"
	"minemarket/internal/pkg/authz"
	"minemarket/internal/repository"
)

type recordingNotifier struct {
	delivered []int64
}

func (n *recordingNotifier) SendToUser(userID int64, _ interface{}) bool {
	n.delivered = append(n.delivered, userID)
	return true
}

type fixtures struct {
	svc      *Service
	messages *repository.MessageRepository
	notifier *recordingNotifier
	alice    *domain.User
	bob      *domain.User
	mine     *domain.Mine
}

func setup(t *testing.T) *fixtures {
	t.Helper()
	dsn := fmt.Sprintf("file:message_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	users := repository.NewUserRepository(db)
	mines := repository.NewMineRepository(db)
	messages := repository.NewMessageRepository(db)

	ctx := context.Background()
	alice := &domain.User{FirstName: "Alice", LastName: "Owner", Email: "alice@example.com", PasswordHash: "x", Role: domain.RoleMineOwner}
	require.NoError(t, users.Create(ctx, alice))
	bob := &domain.User{FirstName: "Bob", LastName: "Investor", Email: "bob@example.com", PasswordHash: "x", Role: domain.RoleInvestor}
	require.NoError(t, users.Create(ctx, bob))

	mine := &domain.Mine{OwnerID: alice.ID, Name: "Karoo Gold", Location: "NC", CommodityType: "gold", Status: domain.MineActive, Price: 100}
	require.NoError(t, mines.Create(ctx, mine))

	notifier := &recordingNotifier{}
	return &fixtures{
		svc:      NewService(messages, users, mines, notifier),
		messages: messages,
		notifier: notifier,
		alice:    alice,
		bob:      bob,
		mine:     mine,
	}
}

func TestSendValidatesAndNotifies(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	bob := authz.Actor{ID: f.bob.ID, Role: f.bob.Role}

	msg, err := f.svc.Send(ctx, bob, SendMessageRequest{ReceiverID: f.alice.ID, MineID: &f.mine.ID, Content: "Is the prospect still open?"})
	require.NoError(t, err)
	require.False(t, msg.Seen)
	require.Equal(t, []int64{f.alice.ID}, f.notifier.delivered)

	_, err = f.svc.Send(ctx, bob, SendMessageRequest{ReceiverID: f.alice.ID, Content: "   "})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Send(ctx, bob, SendMessageRequest{ReceiverID: f.bob.ID, Content: "hi me"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Send(ctx, bob, SendMessageRequest{ReceiverID: 9999, Content: "hello?"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestConversationMarksSeen(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := authz.Actor{ID: f.alice.ID, Role: f.alice.Role}
	bob := authz.Actor{ID: f.bob.ID, Role: f.bob.Role}

	_, err := f.svc.Send(ctx, bob, SendMessageRequest{ReceiverID: f.alice.ID, Content: "first"})
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, alice, SendMessageRequest{ReceiverID: f.bob.ID, Content: "second"})
	require.NoError(t, err)

	thread, err := f.svc.Conversation(ctx, alice, f.bob.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	require.Equal(t, "first", thread[0].Content)

	// bob's message to alice is now seen; alice's own stays unseen
	again, err := f.svc.Conversation(ctx, bob, f.alice.ID)
	require.NoError(t, err)
	for _, m := range again {
		if m.SenderID == f.bob.ID {
			require.True(t, m.Seen)
		}
	}
}

func TestListByMineOwnerOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	bob := authz.Actor{ID: f.bob.ID, Role: f.bob.Role}

	_, err := f.svc.Send(ctx, bob, SendMessageRequest{ReceiverID: f.alice.ID, MineID: &f.mine.ID, Content: "about the mine"})
	require.NoError(t, err)

	_, err = f.svc.ListByMine(ctx, bob, f.mine.ID)
	require.ErrorIs(t, err, ErrForbidden)

	msgs, err := f.svc.ListByMine(ctx, authz.Actor{ID: f.alice.ID, Role: f.alice.Role}, f.mine.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	_, err = f.svc.ListByMine(ctx, bob, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}
