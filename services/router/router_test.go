package router

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mubot/core"
	"mubot/models"
	"mubot/services/delivery"
)

const testPrefix = "-p "

func testEvent(content string) models.MessageEvent {
	return models.MessageEvent{
		GuildID:     "guild-1",
		GuildName:   "Test Guild",
		ChannelID:   "channel-1",
		ChannelName: "general",
		MessageID:   "message-1",
		User:        models.MessageUser{ID: "user-1", DisplayName: "Tester"},
		Content:     content,
	}
}

func textReply(text string) any {
	return mock.MatchedBy(func(reply *models.Reply) bool {
		return reply.Text == text && reply.Payload == nil
	})
}

func TestRegister_RejectsDuplicates(t *testing.T) {
	router := NewRouterService(testPrefix, &delivery.MockDeliveryService{})

	handler := func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
		return nil, nil
	}

	require.NoError(t, router.Register(&models.CommandSpec{Name: "hello", Aliases: []string{"hi"}, Handler: handler}))

	err := router.Register(&models.CommandSpec{Name: "hello", Handler: handler})
	assert.Error(t, err)

	err = router.Register(&models.CommandSpec{Name: "greet", Aliases: []string{"hi"}, Handler: handler})
	assert.Error(t, err)
}

func TestRegister_RequiresNameAndHandler(t *testing.T) {
	router := NewRouterService(testPrefix, &delivery.MockDeliveryService{})

	assert.Error(t, router.Register(nil))
	assert.Error(t, router.Register(&models.CommandSpec{Name: "hello"}))
	assert.Error(t, router.Register(&models.CommandSpec{
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) { return nil, nil },
	}))
}

func TestCommands_ReturnsDefensiveCopy(t *testing.T) {
	router := NewRouterService(testPrefix, &delivery.MockDeliveryService{})
	handler := func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
		return nil, nil
	}
	require.NoError(t, router.Register(&models.CommandSpec{Name: "hello", Handler: handler}))
	require.NoError(t, router.Register(&models.CommandSpec{Name: "roll", Handler: handler}))

	specs := router.Commands()
	require.Len(t, specs, 2)
	assert.Equal(t, "hello", specs[0].Name)
	assert.Equal(t, "roll", specs[1].Name)

	specs[0] = nil
	assert.Equal(t, "hello", router.Commands()[0].Name)
}

func TestHandleMessage_IgnoresNonCommands(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	router := NewRouterService(testPrefix, mockDelivery)

	invoked := false
	require.NoError(t, router.Register(&models.CommandSpec{
		Name: "hello",
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			invoked = true
			return nil, nil
		},
	}))

	router.HandleMessage(context.Background(), testEvent("just chatting about -p hello"))
	router.HandleMessage(context.Background(), testEvent("hello"))

	assert.False(t, invoked)
	mockDelivery.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMessage_IgnoresUnknownCommands(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	router := NewRouterService(testPrefix, mockDelivery)

	router.HandleMessage(context.Background(), testEvent("-p doesnotexist"))

	mockDelivery.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMessage_DispatchesWithParsedArguments(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	mockDelivery.On("Deliver", mock.Anything, mock.Anything, textReply("rolled 3d6")).Return(nil)
	router := NewRouterService(testPrefix, mockDelivery)

	require.NoError(t, router.Register(&models.CommandSpec{
		Name: "roll",
		Params: []models.Param{
			{Name: "rolls", Kind: models.ParamInt},
			{Name: "sides", Kind: models.ParamInt},
		},
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			return &models.Reply{Text: fmt.Sprintf("rolled %dd%d", inv.Int("rolls"), inv.Int("sides"))}, nil
		},
	}))

	router.HandleMessage(context.Background(), testEvent("-p roll 3 6"))

	mockDelivery.AssertExpectations(t)
}

func TestHandleMessage_ResolvesAliases(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	mockDelivery.On("Deliver", mock.Anything, mock.Anything, textReply("hello!")).Return(nil)
	router := NewRouterService(testPrefix, mockDelivery)

	require.NoError(t, router.Register(&models.CommandSpec{
		Name:    "hello",
		Aliases: []string{"hi"},
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			return &models.Reply{Text: "hello!"}, nil
		},
	}))

	router.HandleMessage(context.Background(), testEvent("-p hi"))

	mockDelivery.AssertExpectations(t)
}

func TestHandleMessage_BadIntegerProducesUsageReply(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	mockDelivery.On("Deliver", mock.Anything, mock.Anything,
		textReply("That doesn't look right. Usage: -p roll <rolls> <sides>")).Return(nil)
	router := NewRouterService(testPrefix, mockDelivery)

	invoked := false
	require.NoError(t, router.Register(&models.CommandSpec{
		Name:  "roll",
		Usage: "<rolls> <sides>",
		Params: []models.Param{
			{Name: "rolls", Kind: models.ParamInt},
			{Name: "sides", Kind: models.ParamInt},
		},
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			invoked = true
			return nil, nil
		},
	}))

	router.HandleMessage(context.Background(), testEvent("-p roll abc 6"))

	assert.False(t, invoked, "handler must not run on a failed coercion")
	mockDelivery.AssertExpectations(t)
}

func TestHandleMessage_MissingRequiredArgumentProducesUsageReply(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	mockDelivery.On("Deliver", mock.Anything, mock.Anything,
		textReply("That doesn't look right. Usage: -p country <name>")).Return(nil)
	router := NewRouterService(testPrefix, mockDelivery)

	require.NoError(t, router.Register(&models.CommandSpec{
		Name:   "country",
		Usage:  "<name>",
		Params: []models.Param{{Name: "name", Kind: models.ParamRest}},
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			return &models.Reply{Text: "found it"}, nil
		},
	}))

	router.HandleMessage(context.Background(), testEvent("-p country"))

	mockDelivery.AssertExpectations(t)
}

func TestHandleMessage_RestParameterConsumesRemainder(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	mockDelivery.On("Deliver", mock.Anything, mock.Anything, textReply("query=new zealand")).Return(nil)
	router := NewRouterService(testPrefix, mockDelivery)

	require.NoError(t, router.Register(&models.CommandSpec{
		Name:   "country",
		Params: []models.Param{{Name: "name", Kind: models.ParamRest}},
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			return &models.Reply{Text: "query=" + inv.Text("name")}, nil
		},
	}))

	router.HandleMessage(context.Background(), testEvent("-p country new zealand"))

	mockDelivery.AssertExpectations(t)
}

func TestHandleMessage_CooldownRejection(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	mockDelivery.On("Deliver", mock.Anything, mock.Anything, textReply("ok")).Return(nil).Once()
	mockDelivery.On("Deliver", mock.Anything, mock.Anything, mock.MatchedBy(func(reply *models.Reply) bool {
		return strings.HasPrefix(reply.Text, "This command is on cooldown. Try again in ")
	})).Return(nil).Once()
	router := NewRouterService(testPrefix, mockDelivery)

	invocations := 0
	require.NoError(t, router.Register(&models.CommandSpec{
		Name: "roll",
		Cooldown: &models.CooldownPolicy{
			Max:    1,
			Window: time.Minute,
			Scope:  models.CooldownPerUser,
		},
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			invocations++
			return &models.Reply{Text: "ok"}, nil
		},
	}))

	router.HandleMessage(context.Background(), testEvent("-p roll"))
	router.HandleMessage(context.Background(), testEvent("-p roll"))

	assert.Equal(t, 1, invocations)
	mockDelivery.AssertExpectations(t)
}

func TestHandleMessage_CooldownScopedPerUser(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	mockDelivery.On("Deliver", mock.Anything, mock.Anything, textReply("ok")).Return(nil).Twice()
	router := NewRouterService(testPrefix, mockDelivery)

	require.NoError(t, router.Register(&models.CommandSpec{
		Name: "roll",
		Cooldown: &models.CooldownPolicy{
			Max:    1,
			Window: time.Minute,
			Scope:  models.CooldownPerUser,
		},
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			return &models.Reply{Text: "ok"}, nil
		},
	}))

	first := testEvent("-p roll")
	second := testEvent("-p roll")
	second.User.ID = "user-2"

	router.HandleMessage(context.Background(), first)
	router.HandleMessage(context.Background(), second)

	mockDelivery.AssertExpectations(t)
}

func TestHandleMessage_NoMatchUsesCommandMessage(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	mockDelivery.On("Deliver", mock.Anything, mock.Anything, textReply("atlantis is not a country!")).Return(nil)
	router := NewRouterService(testPrefix, mockDelivery)

	require.NoError(t, router.Register(&models.CommandSpec{
		Name:            "country",
		Params:          []models.Param{{Name: "name", Kind: models.ParamRest}},
		NotFoundMessage: "{query} is not a country!",
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			return nil, fmt.Errorf("no country matched: %w", core.ErrNoMatch)
		},
	}))

	router.HandleMessage(context.Background(), testEvent("-p country atlantis"))

	mockDelivery.AssertExpectations(t)
}

func TestHandleMessage_NoMatchDefaultMessage(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	mockDelivery.On("Deliver", mock.Anything, mock.Anything,
		textReply("Sorry, I couldn't find anything for that :(")).Return(nil)
	router := NewRouterService(testPrefix, mockDelivery)

	require.NoError(t, router.Register(&models.CommandSpec{
		Name:   "book",
		Params: []models.Param{{Name: "title", Kind: models.ParamRest}},
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			return nil, fmt.Errorf("no book matched: %w", core.ErrNoMatch)
		},
	}))

	router.HandleMessage(context.Background(), testEvent("-p book unheard of"))

	mockDelivery.AssertExpectations(t)
}

func TestHandleMessage_TransportFailureProducesApology(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	mockDelivery.On("Deliver", mock.Anything, mock.Anything, textReply(transportApology)).Return(nil)
	router := NewRouterService(testPrefix, mockDelivery)

	require.NoError(t, router.Register(&models.CommandSpec{
		Name: "apod",
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			return nil, fmt.Errorf("fetch failed: %w", core.ErrTransport)
		},
	}))

	router.HandleMessage(context.Background(), testEvent("-p apod"))

	mockDelivery.AssertExpectations(t)
}

func TestHandleMessage_RecoversFromHandlerPanic(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	mockDelivery.On("Deliver", mock.Anything, mock.Anything, textReply(failureApology)).Return(nil)
	router := NewRouterService(testPrefix, mockDelivery)

	require.NoError(t, router.Register(&models.CommandSpec{
		Name: "boom",
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			panic("handler exploded")
		},
	}))

	assert.NotPanics(t, func() {
		router.HandleMessage(context.Background(), testEvent("-p boom"))
	})
	mockDelivery.AssertExpectations(t)
}

func TestHandleMessage_DeliveryFailureDoesNotPropagate(t *testing.T) {
	mockDelivery := &delivery.MockDeliveryService{}
	mockDelivery.On("Deliver", mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("send failed: %w", core.ErrTransport))
	router := NewRouterService(testPrefix, mockDelivery)

	require.NoError(t, router.Register(&models.CommandSpec{
		Name: "hello",
		Handler: func(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
			return &models.Reply{Text: "hello!"}, nil
		},
	}))

	assert.NotPanics(t, func() {
		router.HandleMessage(context.Background(), testEvent("-p hello"))
	})
}
