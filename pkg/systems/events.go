package systems

import (
	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/event"
	"github.com/decker502/spacedefender/pkg/utils"
)

// dispatch 向分发器发送事件，分发器为 nil 时忽略
func dispatch(d *event.Dispatcher, eventType event.EventType, data interface{}) {
	if d == nil {
		return
	}
	d.Dispatch(event.Event{Type: eventType, Data: data})
}

// boundsOf 返回实体的碰撞盒，缺少位置或碰撞组件时返回 false
func boundsOf(em *ecs.EntityManager, id ecs.EntityID) (utils.Rect, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return utils.Rect{}, false
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
	if !ok {
		return utils.Rect{}, false
	}
	return utils.NewRect(pos.X, pos.Y, col.Width, col.Height), true
}

// FindPlayer 返回当前存活的玩家实体
func FindPlayer(em *ecs.EntityManager) (ecs.EntityID, bool) {
	players := ecs.GetEntitiesWith1[*components.PlayerComponent](em)
	if len(players) == 0 {
		return 0, false
	}
	return players[0], true
}
