package ecs

import (
	"reflect"
	"slices"
)

// EntityID 是实体的唯一标识符
// ID 单调递增且在同一个 EntityManager 内不复用，因此 ID 顺序即生成顺序
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 待删除的实体ID集合（去重，同一实体重复标记只删除一次）
	entitiesToDestroy map[EntityID]struct{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		entitiesToDestroy: make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
// 被标记的实体不再出现在查询结果中，直到 RemoveMarkedEntities 真正删除它
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, exists := em.components[id]; !exists {
		return
	}
	em.entitiesToDestroy[id] = struct{}{}
}

// IsMarkedForDestroy 检查实体是否已被标记删除
func (em *EntityManager) IsMarkedForDestroy(id EntityID) bool {
	_, marked := em.entitiesToDestroy[id]
	return marked
}

// IsAlive 检查实体是否存在且未被标记删除
func (em *EntityManager) IsAlive(id EntityID) bool {
	if _, exists := em.components[id]; !exists {
		return false
	}
	return !em.IsMarkedForDestroy(id)
}

// addComponentByType 为实体添加组件（内部使用反射类型作为键）
func (em *EntityManager) addComponentByType(id EntityID, componentType reflect.Type, component interface{}) {
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// getComponentByType 获取实体的特定类型组件
func (em *EntityManager) getComponentByType(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	clear(em.entitiesToDestroy)
}

// Clear 立即删除所有实体
// ID 计数器不重置，旧 ID 不会被新实体复用
func (em *EntityManager) Clear() {
	clear(em.components)
	clear(em.entitiesToDestroy)
}

// EntityCount 返回存活（未被标记删除）的实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components) - len(em.entitiesToDestroy)
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有存活实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表，按 ID 升序（即生成顺序）排列
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	slices.Sort(result)
	return result
}

// typeOf 返回类型参数 T 对应的反射类型
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 为实体添加组件（泛型版本）
// 同类型组件重复添加时覆盖旧组件
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.addComponentByType(id, typeOf[T](), component)
}

// GetComponent 获取实体的特定类型组件（泛型版本）
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.getComponentByType(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有特定类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := em.getComponentByType(id, typeOf[T]())
	return ok
}

// RemoveComponent 从实体移除指定类型的组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, typeOf[T]())
	}
}

// GetEntitiesWith1 查询拥有组件 T1 的所有存活实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1]())
}

// GetEntitiesWith2 查询同时拥有组件 T1、T2 的所有存活实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2]())
}

// GetEntitiesWith3 查询同时拥有组件 T1、T2、T3 的所有存活实体
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2](), typeOf[T3]())
}
