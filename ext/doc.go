// Package ext provides ready-to-use payload constants built on package
// constants: verbose names, help texts and attached values.
//
// Payload fields travel with a constant into any group it anchors:
//
//	var Sizes = constants.MustDefine("Sizes", constants.Attrs{
//	    {"Small", ext.NewValue(1)},
//	    {"Large", constants.ToGroup(ext.NewValue(10), constants.Attrs{
//	        {"XL", ext.NewValue(11)},
//	        {"XXL", ext.NewValue(12)},
//	    })},
//	})
//
//	large, _ := Sizes.Group("Large")
//	v, _ := ext.GroupValue(large) // 10
package ext
