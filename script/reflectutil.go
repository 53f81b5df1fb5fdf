package script

import (
	"go/ast"
	"reflect"
	"unsafe"
)

// unexportValueOf returns a settable/readable reflect.Value for an
// unexported struct field, bypassing the usual reflect restriction.
func unexportValueOf(field reflect.Value) reflect.Value {
	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
}

// valueOf reads a field by name off a classfile instance, exported or not.
func valueOf(elem reflect.Value, name string) any {
	field := elem.FieldByName(name)
	if ast.IsExported(name) {
		return field.Interface()
	}
	return unexportValueOf(field).Interface()
}

// setValue writes a field by name on a classfile instance before Main
// runs, exported or not.
func setValue(elem reflect.Value, name string, value any) {
	field := elem.FieldByName(name)
	if !ast.IsExported(name) {
		field = unexportValueOf(field)
	}
	field.Set(reflect.ValueOf(value))
}
