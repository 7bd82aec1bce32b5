package debugui

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flappybird/ecs"
)

// fieldSetter receives an edit made in the inspector: the field path inside
// the component and the value typed by the user.
type fieldSetter func(path []int, value any)

// ApplyToEntities sets the field at path of component compType on every
// entity in ids. Returns the number of entities changed.
func ApplyToEntities(storage *ecs.Storage, ids []ecs.EntityId, compType reflect.Type, path []int, value any) int {
	changed := 0
	for _, id := range ids {
		component := storage.GetComponent(id, compType)
		if component != nil && SetField(component, path, value) {
			changed++
		}
	}
	return changed
}

func (in *Inspector) renderEntity(id ecs.EntityId) {
	archetype := in.storage.GetArchetypeById(id.ArchetypeId())
	if archetype == nil || !in.storage.Exists(id) {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", id))
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d", id.Index()))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))
	imgui.Separator()

	in.renderComponents([]ecs.EntityId{id}, archetype.Types())
}

func (in *Inspector) renderShared(ids []ecs.EntityId) {
	shared := SharedComponentTypes(in.storage, ids)

	imgui.Text(fmt.Sprintf("%d entities selected", len(ids)))
	imgui.Text(fmt.Sprintf("Shared components: %d", len(shared)))
	imgui.Separator()

	in.renderComponents(ids, shared)
}

// renderComponents shows each component of the first entity and applies edits
// to all of ids.
func (in *Inspector) renderComponents(ids []ecs.EntityId, types []reflect.Type) {
	for _, compType := range types {
		component := in.storage.GetComponent(ids[0], compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(typeName(compType)) {
			renderValue(reflect.ValueOf(component).Elem(), nil, func(path []int, value any) {
				ApplyToEntities(in.storage, ids, compType, path, value)
			})
			imgui.TreePop()
		}
	}
}

func (in *Inspector) renderResource(t reflect.Type) {
	singleton := in.storage.GetSingleton(t)
	if singleton == nil {
		imgui.Text(fmt.Sprintf("Resource %s was removed", typeName(t)))
		return
	}

	imgui.Text(t.String())
	imgui.Separator()
	renderValue(reflect.ValueOf(singleton).Elem(), nil, func(path []int, value any) {
		SetField(singleton, path, value)
	})
}

// renderValue draws the exported fields of a struct value, or the value
// itself for anything else.
func renderValue(val reflect.Value, path []int, set fieldSetter) {
	if val.Kind() != reflect.Struct {
		renderField("value", val, path, set)
		return
	}

	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		renderField(field.Name, fieldVal, append(slices.Clone(path), field.Index), set)
	}
}

func renderField(name string, val reflect.Value, path []int, set fieldSetter) {
	id := fmt.Sprintf("##%s%v", name, path)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(120)
		if imgui.InputInt(id, &v) {
			set(path, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(120)
		if imgui.InputInt(id, &v) && v >= 0 {
			set(path, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(120)
		if imgui.InputFloat(id, &v) {
			set(path, v)
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+id, &v) {
			set(path, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(140)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			set(path, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name + id) {
			renderValue(val, path, set)
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func, reflect.Chan, reflect.Interface, reflect.Pointer, reflect.UnsafePointer:
		imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Kind()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
