package room

import (
	"context"
	"errors"
	"testing"

	"ctchen222/tictactoe/internal/events"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/room/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// outbox records everything the room publishes on the outbound channels.
type outbox struct {
	boards   []*events.BoardUpdatedPayload
	over     []*events.GameOverPayload
	rejected []*events.MoveRejectedPayload
}

func listen(bus *events.Bus) *outbox {
	o := &outbox{}
	bus.Subscribe(events.BoardUpdatedChannel, func(ctx context.Context, p any) error {
		o.boards = append(o.boards, p.(*events.BoardUpdatedPayload))
		return nil
	})
	bus.Subscribe(events.GameOverChannel, func(ctx context.Context, p any) error {
		o.over = append(o.over, p.(*events.GameOverPayload))
		return nil
	})
	bus.Subscribe(events.MoveRejectedChannel, func(ctx context.Context, p any) error {
		o.rejected = append(o.rejected, p.(*events.MoveRejectedPayload))
		return nil
	})
	return o
}

func newStartedRoom(t *testing.T) (*Room, *events.Bus, *outbox) {
	t.Helper()
	engine, err := game.NewEngine()
	require.NoError(t, err)
	bus := events.NewBus()
	out := listen(bus)
	r := NewRoom("room-1", engine, bus)
	r.Start()
	t.Cleanup(r.Close)
	return r, bus, out
}

func TestNewRoom_GeneratesID(t *testing.T) {
	engine, err := game.NewEngine()
	require.NoError(t, err)

	r := NewRoom("", engine, events.NewBus())

	assert.Len(t, r.ID, 36)
	assert.Same(t, engine, r.Engine())
	assert.False(t, r.Started())
}

func TestRoom_HandleMessage_Move(t *testing.T) {
	t.Run("Valid move updates the board", func(t *testing.T) {
		// Given: a started room
		r, _, out := newStartedRoom(t)

		// When: X plays the centre
		err := r.HandleMessage(context.Background(), []byte(`{"type":"move","position":[1,1],"mark":"X"}`))

		// Then: one board update is published and O is next
		require.NoError(t, err)
		require.Len(t, out.boards, 1)
		assert.Equal(t, game.PlayerX, out.boards[0].Board.At(1, 1))
		assert.Equal(t, game.PlayerO, out.boards[0].Next)
		assert.Equal(t, "room-1", out.boards[0].RoomID)
		assert.Empty(t, out.over)
		assert.Empty(t, out.rejected)
	})

	t.Run("Rejected move is reported, not returned", func(t *testing.T) {
		r, _, out := newStartedRoom(t)
		ctx := context.Background()
		require.NoError(t, r.HandleMessage(ctx, []byte(`{"type":"move","position":[0,0],"mark":"X"}`)))

		err := r.HandleMessage(ctx, []byte(`{"type":"move","position":[0,0],"mark":"o"}`))

		require.NoError(t, err)
		require.Len(t, out.rejected, 1)
		assert.Equal(t, "cell_occupied", out.rejected[0].Reason)
		assert.Equal(t, game.PlayerO, out.rejected[0].Mark)
		assert.Len(t, out.boards, 1)
		assert.Equal(t, game.PlayerO, r.Engine().Next())
	})

	t.Run("Out of range move is rejected by the engine", func(t *testing.T) {
		r, _, out := newStartedRoom(t)
		before := r.Engine().Board()

		err := r.HandleMessage(context.Background(), []byte(`{"type":"move","position":[3,-1],"mark":"X"}`))

		require.NoError(t, err)
		require.Len(t, out.rejected, 1)
		assert.Equal(t, "invalid_position", out.rejected[0].Reason)
		assert.Equal(t, before, r.Engine().Board())
	})
}

func TestRoom_FullGame(t *testing.T) {
	// Given: a room with a named X player
	r, _, out := newStartedRoom(t)
	ctx := context.Background()
	require.NoError(t, r.HandleMessage(ctx, []byte(`{"type":"bind_player","mark":"X","name":"Alice"}`)))

	// When: X completes the top row
	moves := []string{
		`{"type":"move","position":[0,0],"mark":"X"}`,
		`{"type":"move","position":[1,1],"mark":"O"}`,
		`{"type":"move","position":[0,1],"mark":"X"}`,
		`{"type":"move","position":[1,0],"mark":"O"}`,
		`{"type":"move","position":[0,2],"mark":"X"}`,
	}
	for _, m := range moves {
		require.NoError(t, r.HandleMessage(ctx, []byte(m)))
	}

	// Then: the game is announced as won by Alice
	require.Len(t, out.over, 1)
	assert.Equal(t, "Alice wins", out.over[0].Announcement)
	assert.Equal(t, game.Status{State: game.Won, Winner: game.PlayerX}, out.over[0].Status)
	assert.Len(t, out.boards, 5)

	// And: further moves are rejected as game over
	require.NoError(t, r.HandleMessage(ctx, []byte(`{"type":"move","position":[2,2],"mark":"O"}`)))
	require.Len(t, out.rejected, 1)
	assert.Equal(t, "game_already_over", out.rejected[0].Reason)

	// When: a new game is requested
	require.NoError(t, r.HandleMessage(ctx, []byte(`{"type":"new_game"}`)))

	// Then: the board is cleared, the default names are back
	assert.True(t, r.Engine().Board().Empty())
	assert.Equal(t, game.DefaultPlayerXName, r.Engine().Player(game.PlayerX).Name())
	last := out.boards[len(out.boards)-1]
	assert.True(t, last.Board.Empty())
	assert.Equal(t, game.InProgress, last.Status.State)
}

func TestRoom_Draw(t *testing.T) {
	r, bus, out := newStartedRoom(t)
	ctx := context.Background()

	cells := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {2, 0}, {1, 2}, {2, 2}, {2, 1}}
	for _, c := range cells {
		require.NoError(t, bus.Publish(ctx, events.MoveChannel, events.MovePayload{
			Row: c[0], Col: c[1], Mark: r.Engine().Next(),
		}))
	}

	require.Len(t, out.over, 1)
	assert.Equal(t, game.DrawAnnouncement, out.over[0].Announcement)
	assert.Equal(t, game.Drawn, out.over[0].Status.State)
}

func TestRoom_HandleMessage_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "Not JSON", raw: `{"type":`, wantErr: ErrMalformedMessage},
		{name: "Missing type", raw: `{}`, wantErr: ErrInvalidMessage},
		{name: "Unknown type", raw: `{"type":"undo"}`, wantErr: ErrInvalidMessage},
		{name: "Move without position", raw: `{"type":"move","mark":"X"}`, wantErr: ErrInvalidMessage},
		{name: "Move with one coordinate", raw: `{"type":"move","position":[1],"mark":"X"}`, wantErr: ErrInvalidMessage},
		{name: "Move without mark", raw: `{"type":"move","position":[1,1]}`, wantErr: ErrInvalidMessage},
		{name: "Move with bad mark", raw: `{"type":"move","position":[1,1],"mark":"Z"}`, wantErr: ErrInvalidMessage},
		{name: "Bind without mark", raw: `{"type":"bind_player","name":"Alice"}`, wantErr: ErrInvalidMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, out := newStartedRoom(t)

			err := r.HandleMessage(context.Background(), []byte(tt.raw))

			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, out.boards)
			assert.True(t, r.Engine().Board().Empty())
		})
	}
}

func TestRoom_UnexpectedPayload(t *testing.T) {
	_, bus, _ := newStartedRoom(t)

	err := bus.Publish(context.Background(), events.MoveChannel, "0 0")

	require.ErrorIs(t, err, ErrUnexpectedPayload)
}

func TestRoom_BindPlayerWithoutMarkIsIgnored(t *testing.T) {
	r, bus, _ := newStartedRoom(t)

	err := bus.Publish(context.Background(), events.BindPlayerChannel, &events.BindPlayerPayload{Name: "Ghost"})

	require.NoError(t, err)
	assert.Equal(t, game.DefaultPlayerXName, r.Engine().Player(game.PlayerX).Name())
	assert.Equal(t, game.DefaultPlayerOName, r.Engine().Player(game.PlayerO).Name())
}

func TestRoom_StartAndClose(t *testing.T) {
	// Given: a mocked broker
	ctrl := gomock.NewController(t)
	broker := mocks.NewMockBroker(ctrl)
	engine, err := game.NewEngine()
	require.NoError(t, err)
	r := NewRoom("room-1", engine, broker)

	subs := map[string]*events.Subscription{}
	source := events.NewBus()
	for _, ch := range []string{events.MoveChannel, events.NewGameChannel, events.BindPlayerChannel} {
		subs[ch] = source.Subscribe(ch, nil)
		broker.EXPECT().Subscribe(ch, gomock.Any()).Return(subs[ch]).Times(1)
		broker.EXPECT().Unsubscribe(ch, subs[ch]).Return(true).Times(1)
	}

	// When: the room is started twice and closed
	r.Start()
	r.Start()
	assert.True(t, r.Started())
	r.Close()

	// Then: each channel was subscribed and unsubscribed exactly once
	assert.False(t, r.Started())
}

func TestRoom_HandleMove_WithMockBroker(t *testing.T) {
	ctrl := gomock.NewController(t)
	broker := mocks.NewMockBroker(ctrl)
	engine, err := game.NewEngine()
	require.NoError(t, err)
	r := NewRoom("room-1", engine, broker)

	handlers := map[string]events.Handler{}
	broker.EXPECT().Subscribe(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ch string, h events.Handler) *events.Subscription {
			handlers[ch] = h
			return events.NewBus().Subscribe(ch, h)
		}).Times(3)
	r.Start()

	t.Run("Accepted move publishes the board", func(t *testing.T) {
		broker.EXPECT().Publish(gomock.Any(), events.BoardUpdatedChannel, gomock.Any()).DoAndReturn(
			func(ctx context.Context, ch string, p any) error {
				board := p.(*events.BoardUpdatedPayload)
				assert.Equal(t, game.PlayerX, board.Board.At(2, 2))
				return nil
			})

		err := handlers[events.MoveChannel](context.Background(), &events.MovePayload{Row: 2, Col: 2, Mark: game.PlayerX})

		require.NoError(t, err)
	})

	t.Run("Subscriber errors reach the publisher", func(t *testing.T) {
		boom := errors.New("render failed")
		broker.EXPECT().Publish(gomock.Any(), events.BoardUpdatedChannel, gomock.Any()).Return(boom)

		err := handlers[events.MoveChannel](context.Background(), &events.MovePayload{Row: 0, Col: 0, Mark: game.PlayerO})

		require.ErrorIs(t, err, boom)
		assert.Equal(t, game.PlayerO, engine.Board().At(0, 0), "the move itself was applied")
	})

	t.Run("Rejection publishes on move_rejected only", func(t *testing.T) {
		broker.EXPECT().Publish(gomock.Any(), events.MoveRejectedChannel, gomock.Any()).DoAndReturn(
			func(ctx context.Context, ch string, p any) error {
				assert.Equal(t, "not_your_turn", p.(*events.MoveRejectedPayload).Reason)
				return nil
			})

		err := handlers[events.MoveChannel](context.Background(), &events.MovePayload{Row: 1, Col: 1, Mark: game.PlayerO})

		require.NoError(t, err)
	})

	t.Run("New game resets and republishes", func(t *testing.T) {
		broker.EXPECT().Publish(gomock.Any(), events.BoardUpdatedChannel, gomock.Any()).DoAndReturn(
			func(ctx context.Context, ch string, p any) error {
				assert.True(t, p.(*events.BoardUpdatedPayload).Board.Empty())
				return nil
			})

		err := handlers[events.NewGameChannel](context.Background(), events.NewGamePayload{})

		require.NoError(t, err)
		assert.Equal(t, 0, engine.Moves())
	})
}
