package letterboxv1

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

func TestSchema_RegisteredForReflection(t *testing.T) {
	t.Parallel()

	fd, err := protoregistry.GlobalFiles.FindFileByPath(ProtoFile)
	require.NoError(t, err)
	assert.Equal(t, File_letterbox_v1_messaging_proto, fd)

	desc, err := protoregistry.GlobalFiles.FindDescriptorByName(ServiceName)
	require.NoError(t, err)
	svc, ok := desc.(protoreflect.ServiceDescriptor)
	require.True(t, ok)

	require.Equal(t, len(Messaging_ServiceDesc.Methods), svc.Methods().Len())
	for _, m := range Messaging_ServiceDesc.Methods {
		assert.NotNil(t, svc.Methods().ByName(protoreflect.Name(m.MethodName)), m.MethodName)
	}
	assert.Equal(t, ProtoFile, Messaging_ServiceDesc.Metadata)
}

// Every JSON tag of a wire type must name a field of its schema message.
func TestSchema_MatchesWireTypes(t *testing.T) {
	t.Parallel()

	for typ, name := range wireTypes {
		md := File_letterbox_v1_messaging_proto.Messages().ByName(name)
		require.NotNil(t, md, name)
		require.Equal(t, md.Fields().Len(), typ.NumField(), name)

		for i := 0; i < typ.NumField(); i++ {
			tag := strings.Split(typ.Field(i).Tag.Get("json"), ",")[0]
			fd := md.Fields().ByName(protoreflect.Name(tag))
			if assert.NotNil(t, fd, "%s.%s", name, tag) {
				assert.Equal(t, typ.Field(i).Type.Kind() == reflect.Slice, fd.IsList(), "%s.%s", name, tag)
			}
		}
	}
}
