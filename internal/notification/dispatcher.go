package notification

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Olori-Ebi/Eyi-media/internal/metrics"
)

// FlagStore is the recipient's coarse "has activity" marker, stored on
// the user document. Implemented by the user repository.
type FlagStore interface {
	UnreadFlag(ctx context.Context, userID string) (bool, error)
	SetUnreadFlag(ctx context.Context, userID string, v bool) error
}

// EventPublisher receives a best-effort copy of every dispatched
// notification. Satisfied by pkg/kafka.Producer; may be nil.
type EventPublisher interface {
	Publish(ctx context.Context, key string, message []byte) error
}

// Dispatcher fans an engagement out into the affected user's feed. It is
// the sole writer of feeds and the single choke point for the
// never-notify-yourself rule. Delivery is best-effort: failures are
// logged and counted, never surfaced, so a recorded engagement is never
// undone because this subsystem is degraded.
type Dispatcher interface {
	NotifyLike(ctx context.Context, recipientID, actorID, postID string)
	RetractLike(ctx context.Context, recipientID, actorID, postID string)
	NotifyComment(ctx context.Context, recipientID, actorID, postID, commentID, text string)
	RetractComment(ctx context.Context, recipientID, actorID, postID, commentID string)
	NotifyReply(ctx context.Context, recipientID, actorID, postID, replyID, text string)
	RetractReply(ctx context.Context, recipientID, actorID, postID, replyID string)
	NotifyFollow(ctx context.Context, recipientID, actorID string)
	RetractFollow(ctx context.Context, recipientID, actorID string)
	NotifyBadge(ctx context.Context, recipientID, text string)
}

type dispatcher struct {
	repo   Repository
	flags  FlagStore
	events EventPublisher
	now    func() time.Time
}

func NewDispatcher(repo Repository, flags FlagStore, events EventPublisher) Dispatcher {
	return &dispatcher{repo: repo, flags: flags, events: events, now: time.Now}
}

func (d *dispatcher) NotifyLike(ctx context.Context, recipientID, actorID, postID string) {
	d.notify(ctx, recipientID, actorID, likeNotification(actorID, postID, d.now()))
}

func (d *dispatcher) RetractLike(ctx context.Context, recipientID, actorID, postID string) {
	d.retract(ctx, recipientID, actorID, Tuple{Kind: KindLike, Actor: actorID, Post: postID})
}

func (d *dispatcher) NotifyComment(ctx context.Context, recipientID, actorID, postID, commentID, text string) {
	d.notify(ctx, recipientID, actorID, commentNotification(actorID, postID, commentID, text, d.now()))
}

func (d *dispatcher) RetractComment(ctx context.Context, recipientID, actorID, postID, commentID string) {
	d.retract(ctx, recipientID, actorID, Tuple{Kind: KindComment, Actor: actorID, Post: postID, CommentID: commentID})
}

func (d *dispatcher) NotifyReply(ctx context.Context, recipientID, actorID, postID, replyID, text string) {
	d.notify(ctx, recipientID, actorID, replyNotification(actorID, postID, replyID, text, d.now()))
}

func (d *dispatcher) RetractReply(ctx context.Context, recipientID, actorID, postID, replyID string) {
	d.retract(ctx, recipientID, actorID, Tuple{Kind: KindReply, Actor: actorID, Post: postID, CommentID: replyID})
}

func (d *dispatcher) NotifyFollow(ctx context.Context, recipientID, actorID string) {
	d.notify(ctx, recipientID, actorID, followNotification(actorID, d.now()))
}

func (d *dispatcher) RetractFollow(ctx context.Context, recipientID, actorID string) {
	d.retract(ctx, recipientID, actorID, Tuple{Kind: KindFollow, Actor: actorID})
}

// NotifyBadge has no actor, so the self-exclusion rule does not apply.
func (d *dispatcher) NotifyBadge(ctx context.Context, recipientID, text string) {
	d.notify(ctx, recipientID, "", badgeNotification(text, d.now()))
}

func (d *dispatcher) notify(ctx context.Context, recipientID, actorID string, n Notification) {
	if actorID != "" && recipientID == actorID {
		return
	}
	if err := d.repo.Push(ctx, recipientID, n); err != nil {
		log.Printf("[Notify] push %s to %s: %v", n.Type, recipientID, err)
		metrics.NotificationFailures.Inc()
		return
	}
	d.setUnread(ctx, recipientID)
	metrics.NotificationsDispatched.WithLabelValues(string(n.Type)).Inc()
	d.publish(ctx, recipientID, n)
}

func (d *dispatcher) retract(ctx context.Context, recipientID, actorID string, t Tuple) {
	if actorID != "" && recipientID == actorID {
		return
	}
	if err := d.repo.PullMatching(ctx, recipientID, t); err != nil {
		log.Printf("[Notify] retract %s from %s: %v", t.Kind, recipientID, err)
		metrics.NotificationFailures.Inc()
		return
	}
	// The unread flag stays as-is: it is a coarse activity marker, not a
	// count, and is never recomputed on retraction.
	metrics.NotificationsRetracted.WithLabelValues(string(t.Kind)).Inc()
}

// setUnread flips the recipient's flag only when it is currently clear,
// to avoid a pointless write on every dispatch.
func (d *dispatcher) setUnread(ctx context.Context, recipientID string) {
	set, err := d.flags.UnreadFlag(ctx, recipientID)
	if err != nil {
		log.Printf("[Notify] read unread flag for %s: %v", recipientID, err)
		return
	}
	if set {
		return
	}
	if err := d.flags.SetUnreadFlag(ctx, recipientID, true); err != nil {
		log.Printf("[Notify] set unread flag for %s: %v", recipientID, err)
	}
}

func (d *dispatcher) publish(ctx context.Context, recipientID string, n Notification) {
	if d.events == nil {
		return
	}
	b, err := json.Marshal(struct {
		Recipient string `json:"recipient"`
		Notification
	}{recipientID, n})
	if err != nil {
		return
	}
	_ = d.events.Publish(ctx, recipientID, b)
}
